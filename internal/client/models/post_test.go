package models

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/dmitrijs2005/skykit/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPost_WithAuthor(t *testing.T) {
	r := newFakeResolver(nil)
	author := &Profile{DID: "did:plc:abc123", Handle: "alice.test"}
	ref := lexicon.StrongRef{URI: "at://did:plc:abc123/app.bsky.feed.post/xyz", CID: "bafy"}
	rec := lexicon.FeedPost{
		Type:      lexicon.FeedPostCollection,
		Text:      "hello",
		Langs:     []string{"en"},
		CreatedAt: "2024-01-02T03:04:05.000Z",
	}

	p, err := NewPost(r, ref, rec, author)
	require.NoError(t, err)

	assert.Equal(t, "did:plc:abc123", p.AuthorDID)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), p.CreatedAt)
	assert.Equal(t, ref, p.Ref())

	got, ok, err := p.Author(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, author, got)
	assert.Zero(t, r.profileCalls.Load())
}

func TestNewPost_LazyAuthor(t *testing.T) {
	r := newFakeResolver(nil)
	r.profiles["did:plc:abc123"] = &Profile{DID: "did:plc:abc123", Handle: "alice.test"}
	ref := lexicon.StrongRef{URI: "at://did:plc:abc123/app.bsky.feed.post/xyz", CID: "bafy"}

	p, err := NewPost(r, ref, lexicon.FeedPost{Text: "x"}, nil)
	require.NoError(t, err)

	for range 2 {
		a, ok, err := p.Author(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "alice.test", a.Handle)
	}
	assert.EqualValues(t, 1, r.profileCalls.Load())
}

func TestNewPost_BadURI(t *testing.T) {
	_, err := NewPost(newFakeResolver(nil), lexicon.StrongRef{URI: "https://example.com"}, lexicon.FeedPost{}, nil)
	assert.ErrorIs(t, err, syntax.ErrInvalidURI)
}

func TestNewPost_DecodesEmbed(t *testing.T) {
	rec := lexicon.FeedPost{
		Text:  "look",
		Embed: json.RawMessage(`{"$type":"app.bsky.embed.external","external":{"uri":"https://go.dev","title":"Go","description":"lang"}}`),
	}
	p, err := NewPost(newFakeResolver(nil), lexicon.StrongRef{URI: "at://did:plc:a/app.bsky.feed.post/1"}, rec, nil)
	require.NoError(t, err)

	ext, ok := p.Embed.(*ExternalEmbed)
	require.True(t, ok)
	assert.Equal(t, "https://go.dev", ext.URI)
	assert.Equal(t, "Go", ext.Title)
}
