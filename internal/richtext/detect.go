// Package richtext finds mentions, links and hashtags in post text and
// describes them as facets with UTF-8 byte ranges.
package richtext

import (
	"context"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/dmitrijs2005/skykit/internal/syntax"
)

const maxTagLength = 64

var (
	mentionRe = regexp.MustCompile(`(?:^|[\s(])(@([a-zA-Z0-9.-]+[a-zA-Z0-9]))`)
	linkRe    = regexp.MustCompile(`(?:^|[\s(])(https?://[^\s]+)`)
	tagRe     = regexp.MustCompile(`(?:^|\s)([#＃]([^\s#＃]+))`)
)

// Result is the normalized text and the facets found in it.
type Result struct {
	Text   string
	Facets []lexicon.Facet
}

// Detector annotates free text with facets.
type Detector interface {
	Detect(ctx context.Context, text string) (Result, error)
}

// ResolveFunc maps a handle to a DID.
type ResolveFunc func(ctx context.Context, handle string) (string, error)

// DefaultDetector detects mentions, http(s) links and hashtags. Mentions
// are resolved to DIDs with Resolve; a mention that cannot be resolved, or
// any mention when Resolve is nil, is left as plain text.
type DefaultDetector struct {
	Resolve ResolveFunc
}

// Detect implements Detector. It fails only when ctx is done.
func (d DefaultDetector) Detect(ctx context.Context, text string) (Result, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var facets []lexicon.Facet

	for _, m := range mentionRe.FindAllStringSubmatchIndex(text, -1) {
		handle := strings.ToLower(text[m[4]:m[5]])
		if !syntax.IsHandle(handle) || d.Resolve == nil {
			continue
		}
		did, err := d.Resolve(ctx, handle)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, ctxErr
			}
			continue
		}
		facets = append(facets, facet(m[2], m[3], lexicon.FacetFeature{Type: lexicon.FacetMention, Did: did}))
	}

	for _, m := range linkRe.FindAllStringSubmatchIndex(text, -1) {
		uri := trimLink(text[m[2]:m[3]])
		if len(uri) <= len("https://") {
			continue
		}
		facets = append(facets, facet(m[2], m[2]+len(uri), lexicon.FacetFeature{Type: lexicon.FacetLink, URI: uri}))
	}

	for _, m := range tagRe.FindAllStringSubmatchIndex(text, -1) {
		tag := strings.TrimRight(text[m[4]:m[5]], ".,;:!?'\"")
		if tag == "" || isDigits(tag) || utf8.RuneCountInString(tag) > maxTagLength {
			continue
		}
		end := m[4] + len(tag)
		facets = append(facets, facet(m[2], end, lexicon.FacetFeature{Type: lexicon.FacetTag, Tag: tag}))
	}

	slices.SortStableFunc(facets, func(a, b lexicon.Facet) int {
		return a.Index.ByteStart - b.Index.ByteStart
	})
	return Result{Text: text, Facets: facets}, nil
}

func facet(start, end int, f lexicon.FacetFeature) lexicon.Facet {
	return lexicon.Facet{
		Index:    lexicon.ByteSlice{ByteStart: start, ByteEnd: end},
		Features: []lexicon.FacetFeature{f},
	}
}

// trimLink drops trailing punctuation and unbalanced closing parens.
func trimLink(uri string) string {
	for {
		trimmed := strings.TrimRight(uri, ".,;:!?'\"")
		if strings.HasSuffix(trimmed, ")") && strings.Count(trimmed, ")") > strings.Count(trimmed, "(") {
			trimmed = trimmed[:len(trimmed)-1]
		}
		if trimmed == uri {
			return uri
		}
		uri = trimmed
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
