package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/skykit/internal/client/models"
	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/dmitrijs2005/skykit/internal/syntax"
)

// GetProfile fetches a fresh profile snapshot by DID or handle.
func (c *Client) GetProfile(ctx context.Context, actor string) (*models.Profile, error) {
	const op = "getProfile"
	if _, err := c.requireSession(op); err != nil {
		return nil, err
	}

	actor = syntax.TrimIdentifier(actor)
	if actor == "" {
		return nil, opError(op, ErrInvalidArgument, fmt.Errorf("empty actor"))
	}

	var view lexicon.ProfileViewDetailed
	if err := c.call(ctx, lexicon.ActorGetProfile, url.Values{"actor": {actor}}, &view); err != nil {
		return nil, mapError(op, ErrFetchProfile, err)
	}
	return models.ProfileFromView(view), nil
}

// ResolveHandle returns the DID a handle points to.
func (c *Client) ResolveHandle(ctx context.Context, handle string) (string, error) {
	const op = "resolveHandle"
	if _, err := c.requireSession(op); err != nil {
		return "", err
	}

	h, err := syntax.NormalizeHandle(handle)
	if err != nil {
		return "", opError(op, ErrInvalidArgument, err)
	}

	var out lexicon.ResolveHandleOutput
	if err := c.call(ctx, lexicon.IdentityResolveHandle, url.Values{"handle": {h}}, &out); err != nil {
		return "", mapError(op, nil, err)
	}
	return out.Did, nil
}
