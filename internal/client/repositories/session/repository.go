// Package session stores the client session in the local SQLite database so
// a later run can resume it without a password.
package session

import (
	"context"

	"github.com/dmitrijs2005/skykit/internal/client/client"
)

// Repository persists at most one session per service URL.
type Repository interface {
	Save(ctx context.Context, s client.Session) error
	Load(ctx context.Context) (*client.Session, error)
	Clear(ctx context.Context) error
}

var _ client.SessionStore = (*SQLiteRepository)(nil)
