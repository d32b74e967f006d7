// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/akaryakin/propnest/internal/models"
	"github.com/akaryakin/propnest/internal/repository"
	"github.com/akaryakin/propnest/internal/server/respond"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenVerifier checks a bearer token and returns the embedded user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserSource resolves a user ID to its record.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// JWTAuth is a middleware that resolves the bearer credential on each
// request to a full user record and stores it in the request context.
//
// The three failure modes are distinguishable so clients know whether to
// log in or re-authenticate: a missing token, a token that fails
// verification, and a verified token whose user no longer exists (the
// record may have been deleted after the token was issued) all reject with
// 401 but carry different messages.
//
// Resolution never mutates the user record.
func JWTAuth(tokens TokenVerifier, users UserSource, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r.Header.Get("Authorization"))
			if tokenStr == "" {
				respond.Error(w, http.StatusUnauthorized, "access token is required")
				return
			}

			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					// A verified-but-dangling token is treated like an
					// invalid one.
					respond.Error(w, http.StatusUnauthorized, "invalid token")
					return
				}
				log.Error("identity resolution failed", zap.Error(err))
				respond.Error(w, http.StatusServiceUnavailable, "service unavailable")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// bearerToken extracts the token from a "Bearer <token>" header value.
// Anything else yields the empty string.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ContextWithUser returns a context carrying the authenticated user.
func ContextWithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if the request did not pass through JWTAuth.
func UserFromContext(ctx context.Context) *models.User {
	if u, ok := ctx.Value(userKey).(*models.User); ok {
		return u
	}
	return nil
}
