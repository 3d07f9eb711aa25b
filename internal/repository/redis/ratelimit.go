package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter is a fixed-window counter shared by every server instance.
// The development backend uses it to throttle OTP sends per phone number.
type RateLimiter struct {
	client *Client
	limit  int
	window time.Duration
}

// NewRateLimiter allows limit hits per key in each window
func NewRateLimiter(client *Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Allow records a hit for key and reports whether it is within the limit,
// how many hits remain and when the window resets.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	fullKey := rateLimitPrefix + key

	pipe := r.client.rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, r.window)
	ttlCmd := pipe.PTTL(ctx, fullKey)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, 0, time.Time{}, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	count := incrCmd.Val()
	remaining := r.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	ttl := ttlCmd.Val()
	if ttl <= 0 {
		ttl = r.window
	}

	return count <= int64(r.limit), remaining, time.Now().Add(ttl), nil
}

// Reset clears the counter for key
func (r *RateLimiter) Reset(ctx context.Context, key string) error {
	return r.client.rdb.Del(ctx, rateLimitPrefix+key).Err()
}
