package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/dmitrijs2005/skykit/internal/client/models"
	"github.com/dmitrijs2005/skykit/internal/logging"
	"github.com/dmitrijs2005/skykit/internal/ratelimit"
	"github.com/dmitrijs2005/skykit/internal/richtext"
	"github.com/dmitrijs2005/skykit/internal/xrpc"
)

// Transport provides the raw operation tree and carries session tokens.
// *xrpc.Client implements it.
type Transport interface {
	Namespace() *xrpc.Group
	SetSession(accessToken, refreshToken string)
	ClearSession()
}

// SessionStore persists the current session between runs.
type SessionStore interface {
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// State is the authentication state of a Client.
type State int32

const (
	LoggedOut State = iota
	Authenticating
	LoggedIn
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged out"
	case Authenticating:
		return "authenticating"
	case LoggedIn:
		return "logged in"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Session is an authenticated session. Pass Resume() to Login to continue
// it later.
type Session struct {
	DID        string
	Handle     string
	Email      string
	AccessJwt  string
	RefreshJwt string
}

// Resume returns login options that continue s.
func (s Session) Resume() ResumeSession {
	return ResumeSession{AccessJwt: s.AccessJwt, RefreshJwt: s.RefreshJwt, DID: s.DID, Handle: s.Handle}
}

// Client is the session facade. It is safe for concurrent use.
type Client struct {
	transport Transport
	ns        *xrpc.Group
	limiter   *ratelimit.Limiter
	detector  richtext.Detector
	store     SessionStore
	log       logging.Logger
	clock     clock.Clock

	langs          []string
	detectLanguage bool

	mu      sync.RWMutex
	state   State
	session Session
	self    *models.Profile
}

var _ models.Resolver = (*Client)(nil)

// New builds a Client over transport. The operation tree is taken from
// transport once and wrapped so every call is throttled and logged.
func New(transport Transport, opts ...Option) (*Client, error) {
	c := &Client{
		transport: transport,
		log:       logging.Discard(),
		clock:     clock.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.limiter == nil {
		l, err := ratelimit.New(ratelimit.DefaultCapacity, ratelimit.DefaultInterval, ratelimit.WithClock(c.clock))
		if err != nil {
			return nil, err
		}
		c.limiter = l
	}
	if c.detector == nil {
		c.detector = richtext.DefaultDetector{Resolve: c.ResolveHandle}
	}

	c.ns = transport.Namespace().Intercept(xrpc.Throttle(c.limiter), xrpc.Logging(c.log))
	return c, nil
}

// State returns the current authentication state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Session returns the active session. ok is false unless the client is
// LoggedIn.
func (c *Client) Session() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != LoggedIn {
		return Session{}, false
	}
	return c.session, true
}

// Self returns the logged in account's profile, cached at login. It is nil
// when there is no session.
func (c *Client) Self() *models.Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != LoggedIn {
		return nil
	}
	return c.self
}

// Limiter returns the limiter shared by every call.
func (c *Client) Limiter() *ratelimit.Limiter { return c.limiter }

// requireSession fails with ErrNoSession unless the client is LoggedIn.
func (c *Client) requireSession(op string) (Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != LoggedIn {
		return Session{}, opError(op, ErrNoSession, nil)
	}
	return c.session, nil
}

func (c *Client) call(ctx context.Context, nsid string, input, output any) error {
	return c.ns.Invoke(ctx, nsid, input, output)
}
