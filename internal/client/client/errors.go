package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/skykit/internal/xrpc"
)

var (
	ErrNoSession       = errors.New("no active session")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAuthentication  = errors.New("authentication failed")
	ErrNotFound        = errors.New("not found")
	ErrCreatePost      = errors.New("create post failed")
	ErrFetchProfile    = errors.New("fetch profile failed")
	ErrLoginInProgress = errors.New("login already in progress")
)

// OperationError reports a failed facade operation. It matches both Kind
// and Err with errors.Is and errors.As.
type OperationError struct {
	Op   string
	Kind error
	Err  error
}

func (e *OperationError) Error() string {
	switch {
	case e.Kind == nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Err == nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	default:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *OperationError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Diagnostic returns the raw body of the remote error, if any.
func (e *OperationError) Diagnostic() []byte {
	var apiErr *xrpc.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.Body
	}
	return nil
}

func opError(op string, kind, err error) error {
	return &OperationError{Op: op, Kind: kind, Err: err}
}

// mapError classifies a failed remote call. Transport failures and context
// errors are returned unchanged; a remote "not found" becomes ErrNotFound;
// other remote failures get kind.
func mapError(op string, kind, err error) error {
	if err == nil {
		return nil
	}

	var tErr *xrpc.TransportError
	if errors.As(err, &tErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if xrpc.IsNotFound(err) {
		return opError(op, ErrNotFound, err)
	}
	return opError(op, kind, err)
}

// forceKind is mapError where every remote failure, including "not
// found", is reported as kind.
func forceKind(op string, kind, err error) error {
	err = mapError(op, kind, err)
	var opErr *OperationError
	if errors.As(err, &opErr) {
		opErr.Kind = kind
	}
	return err
}
