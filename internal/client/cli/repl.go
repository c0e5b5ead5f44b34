package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Post(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Convos(ctx context.Context, args []string) error
	Messages(ctx context.Context, args []string) error
	Send(ctx context.Context, args []string) error
}

type command struct {
	name    string
	usage   string
	auth    bool
	handler func(execIface, context.Context, []string) error
}

var commands = []command{
	{"login", "login", false, execIface.Login},
	{"whoami", "whoami", true, execIface.Whoami},
	{"profile", "profile <handle|did>", true, execIface.Profile},
	{"show", "show <at-uri>", true, execIface.Show},
	{"post", "post [text]", true, execIface.Post},
	{"delete", "delete <at-uri>", true, execIface.Delete},
	{"convos", "convos [limit]", true, execIface.Convos},
	{"messages", "messages <convo-id> [limit]", true, execIface.Messages},
	{"send", "send <convo-id> [text]", true, execIface.Send},
	{"logout", "logout", true, execIface.Logout},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// runREPL reads a line at a time from r, treats the first field as the
// command and dispatches the rest as arguments. It returns on EOF or on
// "exit" / "quit". Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("sky (%s)> ", statusFn()))

		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printlnFn(helpText(a.isLoggedIn()))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		cmd, ok := lookup(name)
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if cmd.auth && !a.isLoggedIn() {
			printlnFn("Not logged in. Use 'login' first.")
			continue
		}
		if err := cmd.handler(a, ctx, args); err != nil {
			printlnFn("error:", err)
		}
	}
}

func helpText(loggedIn bool) string {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, c := range commands {
		if c.auth != loggedIn && c.name != "login" {
			continue
		}
		b.WriteString("\n  " + c.usage)
	}
	b.WriteString("\n  help\n  exit | quit")
	return b.String()
}
