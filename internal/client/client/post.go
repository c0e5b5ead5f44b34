package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"

	"github.com/abadojack/whatlanggo"
	"github.com/dmitrijs2005/skykit/internal/client/models"
	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/dmitrijs2005/skykit/internal/syntax"
)

// GetPost fetches an app.bsky.feed.post record by AT URI together with its
// author's profile. A malformed URI fails before any remote call.
func (c *Client) GetPost(ctx context.Context, uri string) (*models.Post, error) {
	const op = "getPost"
	if _, err := c.requireSession(op); err != nil {
		return nil, err
	}

	ref, err := syntax.ParseRecordURI(uri)
	if err != nil {
		return nil, opError(op, ErrInvalidArgument, err)
	}
	if ref.Collection != lexicon.FeedPostCollection {
		return nil, opError(op, ErrInvalidArgument, fmt.Errorf("%s is not a %s record", uri, lexicon.FeedPostCollection))
	}

	params := url.Values{
		"repo":       {ref.Authority},
		"collection": {ref.Collection},
		"rkey":       {ref.RecordKey},
	}
	var out lexicon.GetRecordOutput
	if err := c.call(ctx, lexicon.RepoGetRecord, params, &out); err != nil {
		return nil, mapError(op, nil, err)
	}

	var rec lexicon.FeedPost
	if err := json.Unmarshal(out.Value, &rec); err != nil {
		return nil, opError(op, nil, fmt.Errorf("decode record: %w", err))
	}

	author, err := c.GetProfile(ctx, ref.Authority)
	if err != nil {
		return nil, err
	}

	post, err := models.NewPost(c, lexicon.StrongRef{URI: out.URI, CID: out.CID}, rec, author)
	if err != nil {
		return nil, opError(op, nil, err)
	}
	return post, nil
}

// Post creates a post as the logged in account.
//
// Posts without languages get the configured defaults. Posts without facets
// are run through the facet detector unless WithResolveFacets(false) is
// given. The returned post's author is the cached own profile.
func (c *Client) Post(ctx context.Context, payload models.PostPayload, opts ...PostOption) (*models.Post, error) {
	const op = "post"
	sess, err := c.requireSession(op)
	if err != nil {
		return nil, err
	}

	o := postOptions{resolveFacets: true}
	for _, opt := range opts {
		opt(&o)
	}

	if len(payload.Langs) == 0 {
		payload.Langs = c.defaultLangs(payload.Text)
	}
	if err := payload.Validate(); err != nil {
		return nil, opError(op, ErrInvalidArgument, err)
	}

	if len(payload.Facets) == 0 && o.resolveFacets && payload.Text != "" {
		res, err := c.detector.Detect(ctx, payload.Text)
		if err != nil {
			return nil, opError(op, nil, fmt.Errorf("detect facets: %w", err))
		}
		payload.Text = res.Text
		payload.Facets = res.Facets
	}

	rec, err := payload.Record(c.clock.Now())
	if err != nil {
		return nil, opError(op, ErrInvalidArgument, err)
	}

	in := lexicon.CreateRecordInput{
		Repo:       sess.DID,
		Collection: lexicon.FeedPostCollection,
		Record:     rec,
	}
	var out lexicon.CreateRecordOutput
	if err := c.call(ctx, lexicon.RepoCreateRecord, in, &out); err != nil {
		return nil, forceKind(op, ErrCreatePost, err)
	}

	post, err := models.NewPost(c, lexicon.StrongRef{URI: out.URI, CID: out.CID}, rec, c.Self())
	if err != nil {
		return nil, opError(op, ErrCreatePost, err)
	}
	c.log.Debug(ctx, "post created", "uri", out.URI)
	return post, nil
}

// DeletePost removes one of the account's own posts.
func (c *Client) DeletePost(ctx context.Context, uri string) error {
	const op = "deletePost"
	sess, err := c.requireSession(op)
	if err != nil {
		return err
	}

	ref, err := syntax.ParseRecordURI(uri)
	if err != nil {
		return opError(op, ErrInvalidArgument, err)
	}
	if ref.Authority != sess.DID && ref.Authority != sess.Handle {
		return opError(op, ErrInvalidArgument, fmt.Errorf("%s is not owned by %s", uri, sess.DID))
	}

	in := lexicon.DeleteRecordInput{Repo: sess.DID, Collection: ref.Collection, Rkey: ref.RecordKey}
	if err := c.call(ctx, lexicon.RepoDeleteRecord, in, nil); err != nil {
		return mapError(op, nil, err)
	}
	return nil
}

// defaultLangs returns the configured languages, or the detected language
// of text when none are configured and detection is on.
func (c *Client) defaultLangs(text string) []string {
	if len(c.langs) > 0 {
		return slices.Clone(c.langs)
	}
	if !c.detectLanguage || text == "" {
		return nil
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return nil
	}
	if code := info.Lang.Iso6391(); code != "" {
		return []string{code}
	}
	return nil
}
