package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/bookstack/bookstack-api/internal/crypto"
	"github.com/bookstack/bookstack-api/internal/model"
	"github.com/bookstack/bookstack-api/internal/repository"
)

type contextKey string

const callerKey contextKey = "caller"

// UserResolver looks up the user record a token's subject refers to.
// *repository.UserRepository satisfies it.
type UserResolver interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Authenticate returns middleware that validates a Bearer access token
// from the Authorization header and resolves the caller's user record
// into the request context. A token whose subject no longer exists is an
// authentication failure, not a lookup miss: the credentials reference a
// dead identity. Identity is re-resolved on every request; there is no
// cross-request caching.
func Authenticate(secret string, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if claims.Kind != crypto.TokenAccess {
				writeJSONError(w, http.StatusUnauthorized, "access token required")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			caller, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFromContext extracts the authenticated user from the request context.
func CallerFromContext(ctx context.Context) (*model.User, bool) {
	caller, ok := ctx.Value(callerKey).(*model.User)
	return caller, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
