package sessions

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"biography-site/internal/shared/storage/db"
)

// SQLRepo stores sessions in Postgres or SQLite. Queries are written with
// Postgres placeholders and rebound for SQLite.
type SQLRepo struct {
	DB      *sql.DB
	Dialect db.Dialect
}

var pgPlaceholder = regexp.MustCompile(`\$\d+`)

func (r *SQLRepo) bind(query string) string {
	if r.Dialect == db.SQLite {
		return pgPlaceholder.ReplaceAllString(query, "?")
	}
	return query
}

// Durable reports true: rows survive restarts and are shared across instances.
func (r *SQLRepo) Durable() bool { return true }

func (r *SQLRepo) Create(ctx context.Context, s Session) error {
	const query = `
INSERT INTO unlock_sessions (id, client_hash, user_agent, created_at, last_seen_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, r.bind(query),
		s.ID,
		s.ClientHash,
		s.UserAgent,
		s.CreatedAt.UTC(),
		s.LastSeenAt.UTC(),
	)
	return err
}

func (r *SQLRepo) Get(ctx context.Context, id string) (Session, error) {
	const query = `
SELECT id, client_hash, user_agent, created_at, last_seen_at
FROM unlock_sessions
WHERE id = $1
LIMIT 1`
	var s Session
	err := r.DB.QueryRowContext(ctx, r.bind(query), id).Scan(
		&s.ID,
		&s.ClientHash,
		&s.UserAgent,
		&s.CreatedAt,
		&s.LastSeenAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	return s, nil
}

func (r *SQLRepo) Touch(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE unlock_sessions SET last_seen_at = $1 WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, r.bind(query), at.UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM unlock_sessions`).Scan(&n)
	return n, err
}

func (r *SQLRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM unlock_sessions WHERE last_seen_at < $1`
	res, err := r.DB.ExecContext(ctx, r.bind(query), cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
