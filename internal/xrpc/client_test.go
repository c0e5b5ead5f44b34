package xrpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dmitrijs2005/skykit/internal/common"
	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{Service: srv.URL + "/", HTTPClient: srv.Client()})
	require.NoError(t, err)
	return c
}

func TestNewClient_ValidatesService(t *testing.T) {
	_, err := NewClient(Config{Service: "ftp://example.com"})
	assert.Error(t, err)

	_, err = NewClient(Config{Service: "https://"})
	assert.Error(t, err)

	c, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, common.DefaultService, c.Service())
}

func TestClient_QueryEncodesParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/xrpc/"+lexicon.ActorGetProfile, r.URL.Path)
		assert.Equal(t, "alice.test", r.URL.Query().Get("actor"))
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get(common.ProxyHeaderName))

		_ = json.NewEncoder(w).Encode(lexicon.ProfileViewDetailed{Did: "did:plc:alice", Handle: "alice.test"})
	})
	c.SetSession("access", "refresh")

	var out lexicon.ProfileViewDetailed
	err := c.Namespace().Invoke(context.Background(), lexicon.ActorGetProfile, url.Values{"actor": {"alice.test"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "did:plc:alice", out.Did)
}

func TestClient_QueryRejectsNonValues(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	err := c.Namespace().Invoke(context.Background(), lexicon.ActorGetProfile, map[string]string{"actor": "x"}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedInput)
}

func TestClient_ProcedureSendsJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"), "createSession must not carry a bearer token")

		var in lexicon.CreateSessionInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "alice.test", in.Identifier)

		_ = json.NewEncoder(w).Encode(lexicon.SessionOutput{AccessJwt: "a", RefreshJwt: "r", Did: "did:plc:alice"})
	})
	c.SetSession("stale", "stale")

	var out lexicon.SessionOutput
	err := c.Procedure(context.Background(), lexicon.ServerCreateSession,
		lexicon.CreateSessionInput{Identifier: "alice.test", Password: "pw"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "a", out.AccessJwt)
}

func TestClient_RefreshUsesRefreshToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer refresh", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(lexicon.SessionOutput{AccessJwt: "a2", RefreshJwt: "r2"})
	})
	c.SetSession("access", "refresh")

	var out lexicon.SessionOutput
	require.NoError(t, c.Procedure(context.Background(), lexicon.ServerRefreshSession, nil, &out))
	assert.Equal(t, "a2", out.AccessJwt)
}

func TestClient_ProcedureSendsBlob(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		data, _ := io.ReadAll(r.Body)
		assert.Equal(t, []byte{1, 2, 3}, data)
		_, _ = io.WriteString(w, `{"blob":{"$type":"blob","ref":{"$link":"bafy"},"mimeType":"image/png","size":3}}`)
	})

	var out lexicon.UploadBlobOutput
	err := c.Procedure(context.Background(), lexicon.RepoUploadBlob, Blob{MimeType: "image/png", Data: []byte{1, 2, 3}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "bafy", out.Blob.Ref.Link)
	assert.Equal(t, int64(3), out.Blob.Size)
}

func TestClient_ChatProxyHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, common.DefaultChatProxy, r.Header.Get(common.ProxyHeaderName))
		_, _ = io.WriteString(w, `{"convo":{"id":"c1","rev":"1","members":[]}}`)
	})

	var out lexicon.GetConvoOutput
	require.NoError(t, c.Query(context.Background(), lexicon.ConvoGetConvo, url.Values{"convoId": {"c1"}}, &out))
	assert.Equal(t, "c1", out.Convo.ID)
}

func TestClient_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"RecordNotFound","message":"Could not locate record"}`)
	})

	err := c.Query(context.Background(), lexicon.RepoGetRecord, nil, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "RecordNotFound", apiErr.Name)
	assert.Equal(t, "Could not locate record", apiErr.Message)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAuthError(err))
	assert.Contains(t, err.Error(), "RecordNotFound")
}

func TestClient_APIError_PlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	err := c.Query(context.Background(), lexicon.ActorGetProfile, nil, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "upstream down", apiErr.Message)
	assert.Empty(t, apiErr.Name)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c, err := NewClient(Config{Service: srv.URL})
	require.NoError(t, err)
	srv.Close()

	err = c.Query(context.Background(), lexicon.ActorGetProfile, nil, nil)
	var tErr *TransportError
	assert.True(t, errors.As(err, &tErr))
	assert.Equal(t, lexicon.ActorGetProfile, tErr.NSID)
}

func TestClient_UndecodableResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json")
	})

	var out lexicon.ProfileViewDetailed
	err := c.Query(context.Background(), lexicon.ActorGetProfile, nil, &out)
	var tErr *TransportError
	assert.True(t, errors.As(err, &tErr))
}

func TestClient_ResponseTooLarge(t *testing.T) {
	old := maxResponseSize
	maxResponseSize = 16
	t.Cleanup(func() { maxResponseSize = old })

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"did":"did:plc:alice","handle":"alice.test"}`)
	})

	var out lexicon.ProfileViewDetailed
	err := c.Query(context.Background(), lexicon.ActorGetProfile, nil, &out)
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.ErrorIs(t, err, ErrResponseTooLarge)
	assert.NotContains(t, err.Error(), "decode response")
}

func TestClient_ResponseAtLimit(t *testing.T) {
	body := `{"did":"did:plc:alice"}`
	old := maxResponseSize
	maxResponseSize = int64(len(body))
	t.Cleanup(func() { maxResponseSize = old })

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	})

	var out lexicon.ProfileViewDetailed
	require.NoError(t, c.Query(context.Background(), lexicon.ActorGetProfile, nil, &out))
	assert.Equal(t, "did:plc:alice", out.Did)
}

func TestClient_NamespaceBookkeeping(t *testing.T) {
	c, err := NewClient(Config{Service: "https://pds.test"})
	require.NoError(t, err)

	ns := c.Namespace()
	for nsid := range lexicon.Methods {
		_, err := ns.Lookup(nsid)
		assert.NoError(t, err, nsid)
	}

	cl, ok := ns.Get(ClientNode)
	require.True(t, ok)
	assert.Same(t, c, cl.(Handle).Value)

	app, _ := ns.Get("app")
	svc, ok := app.(*Group).Get(ServiceNode)
	require.True(t, ok)
	assert.Equal(t, "https://pds.test", svc.(Handle).Value)
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"404", &APIError{StatusCode: 404}, true},
		{"named", &APIError{StatusCode: 400, Name: "ProfileNotFound"}, true},
		{"invalid request not found", &APIError{StatusCode: 400, Name: "InvalidRequest", Message: "Profile not found"}, true},
		{"invalid request other", &APIError{StatusCode: 400, Name: "InvalidRequest", Message: "bad cursor"}, false},
		{"plain", errors.New("x"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(&APIError{StatusCode: 400, Name: "ExpiredToken"}))
	assert.True(t, IsAuthError(&APIError{StatusCode: 401}))
	assert.False(t, IsAuthError(&APIError{StatusCode: 400, Name: "InvalidRequest"}))
}
