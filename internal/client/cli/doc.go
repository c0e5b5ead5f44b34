// Package cli provides the interactive skykit command-line client.
//
// It resumes a stored session when one exists, otherwise logs in with the
// configured or prompted credentials, then runs a REPL over the client
// facade:
//   - login / logout / whoami
//   - profile, show, post, delete
//   - convos, messages, send
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends.
package cli
