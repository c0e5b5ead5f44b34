package client

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/dmitrijs2005/skykit/internal/ratelimit"
	"github.com/dmitrijs2005/skykit/internal/xrpc"
	"github.com/stretchr/testify/require"
)

type handler func(input any) (any, error)

// fakeTransport serves every known NSID from in-memory handlers and
// records the calls that reach it.
type fakeTransport struct {
	mu       sync.Mutex
	handlers map[string]handler
	calls    []string

	access, refresh string
	cleared         int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{handlers: map[string]handler{}}
}

func (f *fakeTransport) on(nsid string, h handler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[nsid] = h
}

func (f *fakeTransport) Namespace() *xrpc.Group {
	g := xrpc.NewGroup()
	for nsid := range lexicon.Methods {
		if err := g.Add(nsid, f.method(nsid)); err != nil {
			panic(err)
		}
	}
	g.Set(xrpc.ServiceNode, xrpc.Handle{Value: "https://pds.test"})
	g.Set(xrpc.ClientNode, xrpc.Handle{Value: f})
	return g
}

func (f *fakeTransport) method(nsid string) xrpc.Method {
	return func(ctx context.Context, input, output any) error {
		f.mu.Lock()
		f.calls = append(f.calls, nsid)
		h := f.handlers[nsid]
		f.mu.Unlock()

		if h == nil {
			return &xrpc.APIError{NSID: nsid, StatusCode: 501, Name: "MethodNotImplemented"}
		}
		res, err := h(input)
		if err != nil {
			return err
		}
		if output == nil || res == nil {
			return nil
		}
		data, err := json.Marshal(res)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, output)
	}
}

func (f *fakeTransport) SetSession(access, refresh string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access, f.refresh = access, refresh
}

func (f *fakeTransport) ClearSession() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access, f.refresh = "", ""
	f.cleared++
}

func (f *fakeTransport) callsTo(nsid string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == nsid {
			n++
		}
	}
	return n
}

func (f *fakeTransport) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeStore struct {
	mu      sync.Mutex
	saved   []Session
	cleared int
}

func (s *fakeStore) Save(ctx context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, sess)
	return nil
}

func (s *fakeStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
	return nil
}

const testCapacity = 50

type fixture struct {
	transport *fakeTransport
	clock     *clock.Mock
	limiter   *ratelimit.Limiter
	client    *Client
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	clk := clock.NewMock()
	clk.Set(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	limiter, err := ratelimit.New(testCapacity, time.Minute, ratelimit.WithClock(clk))
	require.NoError(t, err)

	tr := newFakeTransport()
	c, err := New(tr, append([]Option{WithLimiter(limiter), WithClock(clk)}, opts...)...)
	require.NoError(t, err)

	return &fixture{transport: tr, clock: clk, limiter: limiter, client: c}
}

func profileView(did, handle string) lexicon.ProfileViewDetailed {
	return lexicon.ProfileViewDetailed{Did: did, Handle: handle, DisplayName: handle}
}

// serveAlice installs handlers for a successful credential login as
// alice.test and for profile lookups of alice and bob.
func (fx *fixture) serveAlice(t *testing.T) {
	t.Helper()
	fx.transport.on(lexicon.ServerCreateSession, func(input any) (any, error) {
		in := input.(lexicon.CreateSessionInput)
		if in.Identifier != "alice.test" || in.Password != "pw" {
			return nil, &xrpc.APIError{StatusCode: 401, Name: "AuthenticationRequired", Message: "Invalid identifier or password"}
		}
		return lexicon.SessionOutput{AccessJwt: "access", RefreshJwt: "refresh", Handle: "alice.test", Did: "did:plc:alice"}, nil
	})
	fx.transport.on(lexicon.ActorGetProfile, func(input any) (any, error) {
		switch input.(url.Values).Get("actor") {
		case "did:plc:alice", "alice.test":
			return profileView("did:plc:alice", "alice.test"), nil
		case "did:plc:bob", "bob.test":
			return profileView("did:plc:bob", "bob.test"), nil
		}
		return nil, &xrpc.APIError{StatusCode: 400, Name: "InvalidRequest", Message: "Profile not found"}
	})
}

func (fx *fixture) login(t *testing.T) {
	t.Helper()
	fx.serveAlice(t)
	_, err := fx.client.Login(context.Background(), Credentials{Identifier: "alice.test", Password: "pw"})
	require.NoError(t, err)
}
