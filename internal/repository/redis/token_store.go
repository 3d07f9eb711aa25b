package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/crop-advisory/internal/session"
	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// TokenStore is a session.Store keyed by profile. A zero ttl keeps tokens
// until they are deleted.
type TokenStore struct {
	client *Client
	ttl    time.Duration
}

func NewTokenStore(client *Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

func (s *TokenStore) Load(ctx context.Context, key string) (string, error) {
	token, err := s.client.rdb.Get(ctx, sessionPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", session.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session[%s]: %w", key, err)
	}
	return token, nil
}

func (s *TokenStore) Save(ctx context.Context, key, token string) error {
	if err := s.client.rdb.Set(ctx, sessionPrefix+key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session[%s]: %w", key, err)
	}
	return nil
}

func (s *TokenStore) Delete(ctx context.Context, key string) error {
	if err := s.client.rdb.Del(ctx, sessionPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", key, err)
	}
	return nil
}

// FlushAll removes every stored session and returns how many were deleted
func (s *TokenStore) FlushAll(ctx context.Context) (int64, error) {
	pattern := sessionPrefix + "*"
	var cursor uint64
	var deleted int64

	for {
		keys, nextCursor, err := s.client.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to scan keys: %w", err)
		}

		if len(keys) > 0 {
			count, err := s.client.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("failed to delete keys: %w", err)
			}
			deleted += count
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return deleted, nil
}
