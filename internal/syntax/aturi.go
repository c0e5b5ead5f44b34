// Package syntax parses the identifiers used by the AT protocol: AT URIs,
// DIDs, handles and NSIDs.
package syntax

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidURI    = errors.New("invalid at-uri")
	ErrInvalidNSID   = errors.New("invalid nsid")
	ErrInvalidHandle = errors.New("invalid handle")
)

const atScheme = "at://"

// ATURI is a parsed at://<authority>/<collection>/<rkey> reference.
// Collection and RecordKey are empty when the URI stops early.
type ATURI struct {
	Authority  string
	Collection string
	RecordKey  string
}

// ParseATURI splits an AT URI into its parts. Query strings and fragments
// are not part of record references and are rejected.
func ParseATURI(s string) (ATURI, error) {
	if !strings.HasPrefix(s, atScheme) {
		return ATURI{}, fmt.Errorf("%w: %q: missing %s prefix", ErrInvalidURI, s, atScheme)
	}
	rest := strings.TrimPrefix(s, atScheme)
	if strings.ContainsAny(rest, "?# ") {
		return ATURI{}, fmt.Errorf("%w: %q: unexpected character", ErrInvalidURI, s)
	}

	parts := strings.Split(rest, "/")
	if len(parts) > 3 {
		return ATURI{}, fmt.Errorf("%w: %q: too many path segments", ErrInvalidURI, s)
	}
	for _, p := range parts {
		if p == "" {
			return ATURI{}, fmt.Errorf("%w: %q: empty path segment", ErrInvalidURI, s)
		}
	}

	u := ATURI{Authority: parts[0]}
	if !IsDID(u.Authority) && !IsHandle(u.Authority) {
		return ATURI{}, fmt.Errorf("%w: %q: authority is neither a did nor a handle", ErrInvalidURI, s)
	}
	if len(parts) > 1 {
		if !IsNSID(parts[1]) {
			return ATURI{}, fmt.Errorf("%w: %q: bad collection %q", ErrInvalidURI, s, parts[1])
		}
		u.Collection = parts[1]
	}
	if len(parts) > 2 {
		u.RecordKey = parts[2]
	}
	return u, nil
}

// ParseRecordURI is ParseATURI for URIs that must name a single record.
func ParseRecordURI(s string) (ATURI, error) {
	u, err := ParseATURI(s)
	if err != nil {
		return ATURI{}, err
	}
	if u.RecordKey == "" {
		return ATURI{}, fmt.Errorf("%w: %q: missing record key", ErrInvalidURI, s)
	}
	return u, nil
}

func (u ATURI) String() string {
	var b strings.Builder
	b.WriteString(atScheme)
	b.WriteString(u.Authority)
	if u.Collection != "" {
		b.WriteString("/" + u.Collection)
		if u.RecordKey != "" {
			b.WriteString("/" + u.RecordKey)
		}
	}
	return b.String()
}
