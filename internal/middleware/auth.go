package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"atelier/internal/auth"

	"go.uber.org/zap"
)

type contextKey string

const (
	GrantIDKey contextKey = "grant_id"
	RoleKey    contextKey = "role"
)

// GrantVerifier checks admin grants
type GrantVerifier interface {
	Verify(grant string) (*auth.Claims, error)
}

// AuthMiddleware validates the admin grant in the Authorization header and stores its claims
func AuthMiddleware(verifier GrantVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Debug("Grant validation failed", zap.Error(err))
				if errors.Is(err, auth.ErrGrantExpired) {
					RespondWithError(w, http.StatusUnauthorized, "grant expired")
				} else {
					RespondWithError(w, http.StatusUnauthorized, "invalid grant")
				}
				return
			}

			ctx := context.WithValue(r.Context(), GrantIDKey, claims.ID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetGrantID extracts the grant id from request context
func GetGrantID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(GrantIDKey).(string)
	return id, ok
}

// GetRole extracts the grant role from request context
func GetRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
