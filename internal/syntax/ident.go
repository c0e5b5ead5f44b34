package syntax

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	didRe    = regexp.MustCompile(`^did:[a-z]+:[a-zA-Z0-9._:%-]*[a-zA-Z0-9._-]$`)
	handleRe = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)
	nsidRe   = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9-]{0,62})?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,62})?)+$`)
)

// IsDID reports whether s looks like a did:<method>:<id> identifier.
func IsDID(s string) bool {
	return len(s) <= 2048 && didRe.MatchString(s)
}

// IsHandle reports whether s is a syntactically valid handle.
func IsHandle(s string) bool {
	return len(s) <= 253 && handleRe.MatchString(s)
}

// IsNSID reports whether s is a dotted namespaced identifier with at least
// two segments.
func IsNSID(s string) bool {
	return len(s) <= 317 && nsidRe.MatchString(s)
}

// SplitNSID returns the dot separated segments of an NSID.
func SplitNSID(s string) ([]string, error) {
	if !IsNSID(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNSID, s)
	}
	return strings.Split(s, "."), nil
}

// TrimIdentifier strips surrounding space and one leading "@", so
// "@alice.test" and "alice.test" name the same account.
func TrimIdentifier(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "@")
}

// NormalizeHandle trims an identifier and lower-cases it. It fails when the
// result is not a handle.
func NormalizeHandle(s string) (string, error) {
	h := strings.ToLower(TrimIdentifier(s))
	if !IsHandle(h) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHandle, s)
	}
	return h, nil
}
