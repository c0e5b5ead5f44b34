package models

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/dmitrijs2005/skykit/internal/syntax"
)

// Post is a snapshot of an app.bsky.feed.post record.
type Post struct {
	URI       string
	CID       string
	Text      string
	CreatedAt time.Time
	Langs     []string
	Facets    []lexicon.Facet
	Tags      []string
	Reply     *lexicon.ReplyRef
	Embed     Embed

	// AuthorDID is the repository the record lives in.
	AuthorDID string

	r      Resolver
	author memo[*Profile]
}

// NewPost builds a Post from a record and its strong reference. The author
// DID is taken from the URI. When author is non-nil it is cached as the
// resolved author.
func NewPost(r Resolver, ref lexicon.StrongRef, rec lexicon.FeedPost, author *Profile) (*Post, error) {
	uri, err := syntax.ParseRecordURI(ref.URI)
	if err != nil {
		return nil, err
	}
	embed, err := UnmarshalEmbed(rec.Embed)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", ref.URI, err)
	}

	p := &Post{
		URI:       ref.URI,
		CID:       ref.CID,
		Text:      rec.Text,
		CreatedAt: parseTime(rec.CreatedAt),
		Langs:     rec.Langs,
		Facets:    rec.Facets,
		Tags:      rec.Tags,
		Reply:     rec.Reply,
		Embed:     embed,
		AuthorDID: uri.Authority,
		r:         r,
	}
	if author != nil {
		p.author.store(author)
	}
	return p, nil
}

// Ref returns the post's strong reference, for replies and quotes.
func (p *Post) Ref() lexicon.StrongRef {
	return lexicon.StrongRef{URI: p.URI, CID: p.CID}
}

// Author returns the post's author. ok is false only when the post carries
// no author DID.
func (p *Post) Author(ctx context.Context) (*Profile, bool, error) {
	if p.AuthorDID == "" {
		return nil, false, nil
	}
	prof, err := p.author.get(ctx, func(ctx context.Context) (*Profile, error) {
		return resolveProfile(ctx, p.r, p.AuthorDID)
	})
	if err != nil {
		return nil, true, err
	}
	return prof, true, nil
}
