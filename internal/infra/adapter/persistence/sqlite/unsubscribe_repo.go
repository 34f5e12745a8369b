package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hornwatch/internal/domain/entity"
	"hornwatch/internal/repository"
)

// UnsubscribeRepo implements repository.UnsubscribeRepository using SQLite.
type UnsubscribeRepo struct {
	db *sql.DB
}

// NewUnsubscribeRepo creates a new SQLite-backed unsubscribe repository.
func NewUnsubscribeRepo(db *sql.DB) repository.UnsubscribeRepository {
	return &UnsubscribeRepo{db: db}
}

// Insert records an opt-out. The UNIQUE constraint on token makes a replayed
// unsubscribe link a no-op rather than a duplicate row.
func (r *UnsubscribeRepo) Insert(ctx context.Context, u *entity.Unsubscribe) error {
	const query = `
INSERT INTO unsubscribes (email, token, unsubscribed_at)
VALUES (?, ?, ?)
ON CONFLICT(token) DO NOTHING
`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.Token, u.UnsubscribedAt)
	if err != nil {
		return fmt.Errorf("Insert: ExecContext: %w", err)
	}
	return nil
}

// IsUnsubscribed reports whether email has previously opted out, consulted
// before every digest dispatch.
func (r *UnsubscribeRepo) IsUnsubscribed(ctx context.Context, email string) (bool, error) {
	const query = `SELECT 1 FROM unsubscribes WHERE email = ? LIMIT 1`
	var flag int
	err := r.db.QueryRowContext(ctx, query, email).Scan(&flag)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("IsUnsubscribed: QueryRowContext: %w", err)
	}
	return true, nil
}
