package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"

	"github.com/dmitrijs2005/skykit/internal/client/client"
	"github.com/dmitrijs2005/skykit/internal/dbx"
)

type SQLiteRepository struct {
	db      *sql.DB
	service string
	clock   clock.Clock
}

// NewSQLiteRepository returns a repository scoped to service. The sessions
// table must already exist (see dbx.OpenSQLite).
func NewSQLiteRepository(db *sql.DB, service string, clk clock.Clock) *SQLiteRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &SQLiteRepository{db: db, service: service, clock: clk}
}

func (r *SQLiteRepository) Save(ctx context.Context, s client.Session) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sessions (service, did, handle, email, access_jwt, refresh_jwt, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(service) DO UPDATE SET
				did = excluded.did,
				handle = excluded.handle,
				email = excluded.email,
				access_jwt = excluded.access_jwt,
				refresh_jwt = excluded.refresh_jwt,
				updated_at = excluded.updated_at
		`, r.service, s.DID, s.Handle, s.Email, s.AccessJwt, s.RefreshJwt, r.clock.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to save session for %s: %w", r.service, err)
		}
		return nil
	})
}

// Load returns (nil, nil) when no session is stored for the service.
func (r *SQLiteRepository) Load(ctx context.Context) (*client.Session, error) {
	var s client.Session
	err := r.db.QueryRowContext(ctx, `
		SELECT did, handle, email, access_jwt, refresh_jwt
		FROM sessions WHERE service = ?
	`, r.service).Scan(&s.DID, &s.Handle, &s.Email, &s.AccessJwt, &s.RefreshJwt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session for %s: %w", r.service, err)
	}
	return &s, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE service = ?`, r.service)
	if err != nil {
		return fmt.Errorf("failed to clear session for %s: %w", r.service, err)
	}
	return nil
}
