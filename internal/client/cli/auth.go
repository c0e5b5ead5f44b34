package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/skykit/internal/client/client"
)

// Indirections to the interactive input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Login prompts for an identifier (unless given as the first argument) and
// an app password.
func (a *App) Login(ctx context.Context, args []string) error {
	var identifier string
	if len(args) > 0 {
		identifier = args[0]
	} else {
		var err error
		identifier, err = getSimpleText(a.reader, "Handle, DID or email", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if _, err := a.client.Login(ctx, client.Credentials{Identifier: identifier, Password: password}); err != nil {
		return err
	}
	a.printSelf()
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Whoami(_ context.Context, _ []string) error {
	a.printSelf()
	return nil
}

func (a *App) printSelf() {
	if self := a.client.Self(); self != nil {
		fmt.Fprintf(a.out, "Logged in as %s (@%s, %s)\n", self.Name(), self.Handle, self.DID)
	}
}
