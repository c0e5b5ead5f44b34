// Package client is the session facade of the SDK.
//
// # Overview
//
// A Client owns the rate limiter, the intercepted XRPC operation tree and
// the authentication state. Every remote call goes through the tree, so
// every call takes one token from the limiter, including calls made while
// logging in.
//
// The state machine is LoggedOut -> Authenticating -> LoggedIn. Any
// operation other than Login fails with ErrNoSession unless the client is
// LoggedIn; that check runs before a token is taken.
//
// # Error Handling
//
// Failures are reported as *OperationError values that match, via
// errors.Is, one of the sentinel kinds (ErrNotFound, ErrAuthentication,
// ErrCreatePost, ErrFetchProfile, ...) and, via errors.As, the remote
// *xrpc.APIError. Network failures surface as *xrpc.TransportError,
// unchanged.
//
// # Entities
//
// Client implements models.Resolver, so posts, messages and conversations
// it returns resolve their relations back through it.
package client
