// Package session holds the access token that the API client attaches to
// requests. A Session binds one profile key to a Store; the client never
// keeps a token of its own.
package session

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoToken is returned by Store.Load when no token is held for the key
var ErrNoToken = errors.New("no token stored")

// Store persists at most one token per key. Delete of a missing key is not
// an error.
type Store interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, token string) error
	Delete(ctx context.Context, key string) error
}

// Session is the explicit token context passed to every client operation.
type Session struct {
	key   string
	store Store
}

// New binds key to store.
func New(key string, store Store) *Session {
	return &Session{key: key, store: store}
}

// Key returns the profile key the session is bound to
func (s *Session) Key() string {
	return s.key
}

// Token returns the current token, or "" when none is held. A nil session
// holds no token.
func (s *Session) Token(ctx context.Context) (string, error) {
	if s == nil || s.store == nil {
		return "", nil
	}
	token, err := s.store.Load(ctx, s.key)
	if errors.Is(err, ErrNoToken) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// SetToken stores token, replacing any previous one. An empty token clears
// the slot.
func (s *Session) SetToken(ctx context.Context, token string) error {
	if s == nil || s.store == nil {
		return errors.New("session has no store")
	}
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.store.Save(ctx, s.key, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Clear removes the token. Clearing an empty or nil session is a no-op.
func (s *Session) Clear(ctx context.Context) error {
	if s == nil || s.store == nil {
		return nil
	}
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// LoggedIn reports whether a token is currently held.
func (s *Session) LoggedIn(ctx context.Context) bool {
	token, err := s.Token(ctx)
	return err == nil && token != ""
}
