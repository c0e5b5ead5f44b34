package xrpc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownMethod is returned when an NSID does not resolve to a
	// method in the tree.
	ErrUnknownMethod = errors.New("unknown xrpc method")

	// ErrUnsupportedInput is returned when a method is given an input it
	// cannot encode.
	ErrUnsupportedInput = errors.New("unsupported xrpc input")

	// ErrResponseTooLarge is wrapped in a TransportError when a response
	// body exceeds the read limit.
	ErrResponseTooLarge = errors.New("xrpc response too large")
)

// APIError is a non-2xx XRPC response. Name and Message come from the
// standard {"error","message"} body; Body keeps the raw payload.
type APIError struct {
	NSID       string
	StatusCode int
	Name       string
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "xrpc: %s: HTTP %d", e.NSID, e.StatusCode)
	if e.Name != "" {
		fmt.Fprintf(&b, ": %s", e.Name)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	return b.String()
}

// TransportError wraps a failure to exchange a request with the service,
// such as a refused connection or an undecodable response.
type TransportError struct {
	NSID string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("xrpc: %s: transport: %v", e.NSID, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

var notFoundNames = map[string]struct{}{
	"NotFound":        {},
	"RecordNotFound":  {},
	"ProfileNotFound": {},
	"ConvoNotFound":   {},
	"InvalidConvo":    {},
}

// IsNotFound reports whether err is an APIError saying the referenced
// record, profile or conversation does not exist.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == 404 {
		return true
	}
	if _, ok := notFoundNames[apiErr.Name]; ok {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return apiErr.Name == "InvalidRequest" &&
		(strings.Contains(msg, "not found") || strings.Contains(msg, "could not locate"))
}

// IsAuthError reports whether err is an APIError rejecting the caller's
// credentials or tokens.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Name {
	case "AuthenticationRequired", "ExpiredToken", "InvalidToken", "AccountTakedown":
		return true
	}
	return apiErr.StatusCode == 401
}
