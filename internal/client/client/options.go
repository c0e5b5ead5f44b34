package client

import (
	"github.com/benbjohnson/clock"
	"github.com/dmitrijs2005/skykit/internal/logging"
	"github.com/dmitrijs2005/skykit/internal/ratelimit"
	"github.com/dmitrijs2005/skykit/internal/richtext"
	"github.com/samber/lo"
)

// Option configures a Client.
type Option func(*Client)

// WithLimiter shares l instead of a default 3000 per 5 minutes limiter.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLanguages sets the language tags given to posts that carry none.
func WithLanguages(langs ...string) Option {
	return func(c *Client) { c.langs = lo.Compact(lo.Uniq(langs)) }
}

// WithLanguageDetection tags posts with their detected language when no
// languages are configured.
func WithLanguageDetection(enabled bool) Option {
	return func(c *Client) { c.detectLanguage = enabled }
}

// WithDetector replaces the facet detector used by Post.
func WithDetector(d richtext.Detector) Option {
	return func(c *Client) { c.detector = d }
}

// WithSessionStore saves the session after login and clears it on logout.
func WithSessionStore(s SessionStore) Option {
	return func(c *Client) { c.store = s }
}

func WithClock(clk clock.Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// PostOption configures a single Post call.
type PostOption func(*postOptions)

type postOptions struct {
	resolveFacets bool
}

// WithResolveFacets turns facet detection on or off for a post that
// carries no facets. It is on by default.
func WithResolveFacets(resolve bool) PostOption {
	return func(o *postOptions) { o.resolveFacets = resolve }
}
