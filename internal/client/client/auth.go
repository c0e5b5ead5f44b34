package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/skykit/internal/client/models"
	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/dmitrijs2005/skykit/internal/syntax"
	"github.com/golang-jwt/jwt/v5"
)

// Login authenticates with credentials or resumes a session, then fetches
// and caches the account's own profile. If that fetch fails the login fails
// with ErrFetchProfile and the client stays LoggedOut, even though the
// server accepted the credentials.
func (c *Client) Login(ctx context.Context, opts LoginOptions) (Session, error) {
	opts, err := normalizeLoginOptions(opts)
	if err != nil {
		return Session{}, opError("login", ErrInvalidArgument, err)
	}

	c.mu.Lock()
	if c.state == Authenticating {
		c.mu.Unlock()
		return Session{}, opError("login", ErrLoginInProgress, nil)
	}
	c.state = Authenticating
	c.session = Session{}
	c.self = nil
	c.mu.Unlock()

	sess, self, err := c.authenticate(ctx, opts)
	if err != nil {
		c.transport.ClearSession()
		c.setState(LoggedOut, Session{}, nil)
		c.log.Warn(ctx, "login failed", "error", err)
		return Session{}, err
	}

	c.setState(LoggedIn, sess, self)
	c.log.Info(ctx, "logged in", "did", sess.DID, "handle", sess.Handle)

	if c.store != nil {
		if err := c.store.Save(ctx, sess); err != nil {
			c.log.Warn(ctx, "failed to save session", "error", err)
		}
	}
	return sess, nil
}

func (c *Client) setState(st State, sess Session, self *models.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = st
	c.session = sess
	c.self = self
}

func (c *Client) authenticate(ctx context.Context, opts LoginOptions) (Session, *models.Profile, error) {
	var (
		sess Session
		err  error
	)
	switch o := opts.(type) {
	case Credentials:
		sess, err = c.createSession(ctx, o)
	case ResumeSession:
		sess, err = c.resumeSession(ctx, o)
	}
	if err != nil {
		return Session{}, nil, err
	}

	var view lexicon.ProfileViewDetailed
	if err := c.call(ctx, lexicon.ActorGetProfile, url.Values{"actor": {sess.DID}}, &view); err != nil {
		return Session{}, nil, opError("login", ErrFetchProfile, err)
	}
	return sess, models.ProfileFromView(view), nil
}

func (c *Client) createSession(ctx context.Context, o Credentials) (Session, error) {
	in := lexicon.CreateSessionInput{
		Identifier:      syntax.TrimIdentifier(o.Identifier),
		Password:        o.Password,
		AuthFactorToken: o.AuthFactorToken,
	}

	var out lexicon.SessionOutput
	if err := c.call(ctx, lexicon.ServerCreateSession, in, &out); err != nil {
		return Session{}, forceKind("login", ErrAuthentication, err)
	}
	if out.AccessJwt == "" || out.RefreshJwt == "" || out.Did == "" {
		return Session{}, opError("login", ErrAuthentication, errors.New("server returned an incomplete session"))
	}

	c.transport.SetSession(out.AccessJwt, out.RefreshJwt)
	return sessionFromOutput(out), nil
}

// resumeSession checks the stored access token's expiry. An expired token
// is exchanged with refreshSession; a live one is checked with getSession.
func (c *Client) resumeSession(ctx context.Context, o ResumeSession) (Session, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(o.AccessJwt, claims); err != nil {
		return Session{}, opError("login", ErrAuthentication, fmt.Errorf("malformed access token: %w", err))
	}

	c.transport.SetSession(o.AccessJwt, o.RefreshJwt)

	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(c.clock.Now()) {
		var out lexicon.SessionOutput
		if err := c.call(ctx, lexicon.ServerRefreshSession, nil, &out); err != nil {
			return Session{}, forceKind("login", ErrAuthentication, err)
		}
		if out.AccessJwt == "" || out.RefreshJwt == "" {
			return Session{}, opError("login", ErrAuthentication, errors.New("refresh returned no tokens"))
		}
		if err := checkSessionDID(o.DID, out.Did); err != nil {
			return Session{}, err
		}
		c.transport.SetSession(out.AccessJwt, out.RefreshJwt)
		return sessionFromOutput(out), nil
	}

	var out lexicon.SessionOutput
	if err := c.call(ctx, lexicon.ServerGetSession, nil, &out); err != nil {
		return Session{}, forceKind("login", ErrAuthentication, err)
	}
	if err := checkSessionDID(o.DID, out.Did); err != nil {
		return Session{}, err
	}
	out.AccessJwt = o.AccessJwt
	out.RefreshJwt = o.RefreshJwt
	return sessionFromOutput(out), nil
}

// checkSessionDID rejects a resumed session the server reports for no
// account or for a different account than the stored one.
func checkSessionDID(want, got string) error {
	if got == "" {
		return opError("login", ErrAuthentication, errors.New("server returned a session without a DID"))
	}
	if want != "" && want != got {
		return opError("login", ErrAuthentication, fmt.Errorf("session belongs to %s, not %s", got, want))
	}
	return nil
}

func sessionFromOutput(out lexicon.SessionOutput) Session {
	return Session{
		DID:        out.Did,
		Handle:     out.Handle,
		Email:      out.Email,
		AccessJwt:  out.AccessJwt,
		RefreshJwt: out.RefreshJwt,
	}
}

// Logout revokes the session on the server and clears it locally. Local
// state is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.requireSession("logout"); err != nil {
		return err
	}

	callErr := c.call(ctx, lexicon.ServerDeleteSession, nil, nil)

	c.transport.ClearSession()
	c.setState(LoggedOut, Session{}, nil)
	if c.store != nil {
		if err := c.store.Clear(ctx); err != nil {
			c.log.Warn(ctx, "failed to clear saved session", "error", err)
		}
	}
	c.log.Info(ctx, "logged out")

	if callErr != nil {
		return mapError("logout", nil, callErr)
	}
	return nil
}
