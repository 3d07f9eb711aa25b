package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Rrens/crop-advisory/internal/api/response"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/security"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	ClaimsKey contextKey = "claims"
)

// Authenticator resolves a bearer token to its claims
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*security.Claims, error)
}

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	auth Authenticator
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Authenticate validates the bearer token. Token failures are 401; a fault
// while checking revocation is 500 so clients keep their token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Not authenticated")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			response.Unauthorized(w, "Invalid authorization header")
			return
		}

		claims, err := m.auth.Authenticate(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenRevoked):
				response.Unauthorized(w, "Token has been revoked")
			case errors.Is(err, security.ErrInvalidToken):
				log.Debug().Err(err).Msg("rejected bearer token")
				response.Unauthorized(w, "Could not validate credentials")
			default:
				log.Error().Err(err).Msg("Failed to authenticate request")
				response.InternalError(w, "Internal server error")
			}
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Unauthorized(w, "Could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, ClaimsKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID gets the user ID from context
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// GetClaims gets the validated token claims from context
func GetClaims(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*security.Claims)
	return claims, ok
}
