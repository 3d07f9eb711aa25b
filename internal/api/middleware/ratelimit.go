package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Rrens/crop-advisory/internal/api/response"
	"github.com/Rrens/crop-advisory/internal/security"
	"github.com/rs/zerolog/log"
)

// Limiter is a fixed-window counter keyed by an arbitrary string
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, int, time.Time, error)
}

// KeyFunc derives the rate limit key of a request. An empty key skips
// limiting.
type KeyFunc func(r *http.Request) string

// RateLimitMiddleware handles rate limiting
type RateLimitMiddleware struct {
	limiter Limiter
	key     KeyFunc
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(limiter Limiter, key KeyFunc) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, key: key}
}

// Limit rejects requests over the limit with 429
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := m.key(r)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		allowed, remaining, resetTime, err := m.limiter.Allow(r.Context(), key)
		if err != nil {
			// If rate limiter fails, allow the request but log the error
			log.Warn().Err(err).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.UTC().Format(time.RFC3339))

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())+1))
			response.TooManyRequests(w, "Too many OTP requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// PhoneKey keys on the normalised phone_number of a JSON body. The body is
// restored for the next handler.
func PhoneKey(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	phone, err := security.NormalizePhoneNumber(payload.PhoneNumber)
	if err != nil {
		return ""
	}
	return "otp:" + phone
}
