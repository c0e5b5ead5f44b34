package xrpc

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/skykit/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingMethod(calls *[]string, name string) Method {
	return func(ctx context.Context, input, output any) error {
		*calls = append(*calls, name)
		if out, ok := output.(*string); ok {
			*out = name
		}
		return nil
	}
}

func TestGroup_AddLookupInvoke(t *testing.T) {
	var calls []string
	g := NewGroup()
	require.NoError(t, g.Add("app.bsky.actor.getProfile", recordingMethod(&calls, "getProfile")))
	require.NoError(t, g.Add("app.bsky.feed.getPosts", recordingMethod(&calls, "getPosts")))

	var out string
	require.NoError(t, g.Invoke(context.Background(), "app.bsky.actor.getProfile", nil, &out))
	assert.Equal(t, "getProfile", out)
	assert.Equal(t, []string{"getProfile"}, calls)

	assert.Equal(t, []string{"app.bsky.actor.getProfile", "app.bsky.feed.getPosts"}, g.Methods())

	app, ok := g.Get("app")
	require.True(t, ok)
	assert.IsType(t, &Group{}, app)
	assert.Equal(t, []string{"bsky"}, app.(*Group).Names())
}

func TestGroup_Lookup_Unknown(t *testing.T) {
	g := NewGroup()
	require.NoError(t, g.Add("app.bsky.actor.getProfile", func(context.Context, any, any) error { return nil }))
	g.Set(ServiceNode, Handle{Value: "https://pds.test"})

	tests := []string{
		"app.bsky.actor.getProfiles",
		"app.bsky.actor",
		"app.bsky.actor.getProfile.extra",
		"_service",
		"",
	}
	for _, nsid := range tests {
		t.Run(nsid, func(t *testing.T) {
			_, err := g.Lookup(nsid)
			assert.ErrorIs(t, err, ErrUnknownMethod)
		})
	}
}

func TestGroup_Add_Rejects(t *testing.T) {
	noop := func(context.Context, any, any) error { return nil }

	t.Run("invalid nsid", func(t *testing.T) {
		g := NewGroup()
		err := g.Add("getProfile", noop)
		assert.ErrorIs(t, err, syntax.ErrInvalidNSID)
	})

	t.Run("method in place of group", func(t *testing.T) {
		g := NewGroup()
		require.NoError(t, g.Add("app.bsky.actor", noop))
		err := g.Add("app.bsky.actor.getProfile", noop)
		assert.Error(t, err)
	})

	t.Run("group in place of method", func(t *testing.T) {
		g := NewGroup()
		require.NoError(t, g.Add("app.bsky.actor.getProfile", noop))
		err := g.Add("app.bsky.actor", noop)
		assert.Error(t, err)
	})
}

func TestGroup_Methods_SkipsReserved(t *testing.T) {
	g := NewGroup()
	require.NoError(t, g.Add("com.atproto.server.getSession", func(context.Context, any, any) error { return nil }))
	g.Set(ServiceNode, Handle{Value: "svc"})
	g.Set(ClientNode, Handle{Value: "client"})

	assert.Equal(t, []string{"com.atproto.server.getSession"}, g.Methods())
	assert.True(t, IsReserved("_service"))
	assert.False(t, IsReserved("service"))
}

func TestGroup_Invoke_PassesErrorThrough(t *testing.T) {
	boom := errors.New("boom")
	g := NewGroup()
	require.NoError(t, g.Add("app.bsky.feed.post", func(context.Context, any, any) error { return boom }))

	err := g.Invoke(context.Background(), "app.bsky.feed.post", nil, nil)
	assert.Same(t, boom, err)
}
