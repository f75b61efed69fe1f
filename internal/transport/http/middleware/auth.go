package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/otp-auth-api/internal/domain"
	jwtinfra "github.com/otp-auth-api/internal/infrastructure/jwt"
)

type contextKey string

const IdentityKey contextKey = "identity"

// TokenGuard validates the bearer credential and injects the embedded
// identity into the request context. The credential is read from the
// x-access-token header first, then Authorization; an optional "Bearer "
// prefix is stripped either way.
func TokenGuard(provider *jwtinfra.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("x-access-token")
			if token == "" {
				token = r.Header.Get("Authorization")
			}
			if token == "" {
				writeError(w, http.StatusUnauthorized, "No token provided!")
				return
			}
			token = strings.TrimPrefix(token, "Bearer ")
			claims, err := provider.Verify(token)
			if err != nil || claims.User == nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized!")
				return
			}
			ctx := context.WithValue(r.Context(), IdentityKey, claims.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated identity from the request context.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	i, ok := ctx.Value(IdentityKey).(*domain.Identity)
	return i, ok
}
