package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const usernameContextKey = contextKey("username")

// Middleware verifies the bearer token on every request and stores the
// authenticated username in the request context. A missing, malformed,
// expired, or forged token is answered with 401; no protected handler
// ever runs unauthenticated.
func Middleware(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Bearer token is required", http.StatusUnauthorized)
				return
			}

			username, err := tokens.Verify(tokenString)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), usernameContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextUsername retrieves the authenticated username from the context.
func ContextUsername(ctx context.Context) string {
	if value, ok := ctx.Value(usernameContextKey).(string); ok {
		return value
	}
	return ""
}
