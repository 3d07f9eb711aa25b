package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Rrens/crop-advisory/internal/config"
	"github.com/Rrens/crop-advisory/internal/repository/redis"
	"github.com/Rrens/crop-advisory/internal/repository/sqlite"
	"github.com/Rrens/crop-advisory/internal/security"
	"github.com/Rrens/crop-advisory/internal/session"
	"github.com/rs/zerolog/log"
)

// Store is the configured session.Store plus the resources behind it
type Store struct {
	session.Store
	kind   string
	closer io.Closer
	purge  func(ctx context.Context) (int64, error)
}

// OpenStore builds the store named by cfg.Session.Store. With an
// encryption key set, tokens are sealed before they reach it.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	s := &Store{kind: cfg.Session.Store}

	switch cfg.Session.Store {
	case "memory":
		s.Store = session.NewMemoryStore()
	case "file", "":
		s.kind = "file"
		s.Store = session.NewFileStore(cfg.Session.Path)
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.SQLite)
		if err != nil {
			return nil, err
		}
		if err := sqlite.RunMigrations(db); err != nil {
			db.Close()
			return nil, err
		}
		tokens := sqlite.NewTokenStore(db, cfg.Session.TTL)
		s.Store, s.closer, s.purge = tokens, db, tokens.Purge
	case "redis":
		rc, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		tokens := redis.NewTokenStore(rc, cfg.Session.TTL)
		s.Store, s.closer, s.purge = tokens, rc, tokens.FlushAll
	default:
		return nil, fmt.Errorf("unknown session store %q (want memory, file, sqlite or redis)", cfg.Session.Store)
	}

	if cfg.Session.EncryptionKey != "" {
		enc, err := security.NewEncryptorFromSecret(cfg.Session.EncryptionKey)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("invalid session encryption key: %w", err)
		}
		s.Store = session.NewEncryptedStore(s.Store, enc)
	}

	log.Debug().
		Str("store", s.kind).
		Bool("encrypted", cfg.Session.EncryptionKey != "").
		Str("profile", cfg.Session.Profile).
		Msg("Session store opened")
	return s, nil
}

// Kind names the backing store
func (s *Store) Kind() string {
	return s.kind
}

// Purge removes expired (sqlite) or all (redis) stored sessions
func (s *Store) Purge(ctx context.Context) (int64, error) {
	if s.purge == nil {
		return 0, errors.New("purge is only supported by the sqlite and redis stores")
	}
	return s.purge(ctx)
}

func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
