package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/crop-advisory/internal/session"
)

// TokenStore is a session.Store backed by the sessions table. With a
// non-zero ttl, tokens older than ttl read as absent.
type TokenStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewTokenStore(db *sql.DB, ttl time.Duration) *TokenStore {
	return &TokenStore{db: db, ttl: ttl, now: time.Now}
}

func (s *TokenStore) Load(ctx context.Context, key string) (string, error) {
	var (
		token     string
		expiresAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT token, expires_at FROM sessions WHERE profile = ?`, key,
	).Scan(&token, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", session.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session[%s]: %w", key, err)
	}
	if expiresAt.Valid && !s.now().Before(expiresAt.Time) {
		return "", session.ErrNoToken
	}
	return token, nil
}

func (s *TokenStore) Save(ctx context.Context, key, token string) error {
	now := s.now().UTC()
	var expiresAt sql.NullTime
	if s.ttl > 0 {
		expiresAt = sql.NullTime{Time: now.Add(s.ttl), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (profile, token, updated_at, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(profile) DO UPDATE SET
			token = excluded.token,
			updated_at = excluded.updated_at,
			expires_at = excluded.expires_at
	`, key, token, now, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to save session[%s]: %w", key, err)
	}
	return nil
}

func (s *TokenStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE profile = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", key, err)
	}
	return nil
}

// Purge removes expired rows and returns how many were deleted.
func (s *TokenStore) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= ?`, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return res.RowsAffected()
}
