package transport

import (
	"context"
	"net/http"
	"strings"
)

type ownerKey struct{}

// OwnerResolver resolves a user id from a bearer token.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, token string) (string, error)
}

// OwnerFromContext returns the authenticated user id from context, if present.
func OwnerFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerKey{}).(string)
	return ownerID, ok
}

// AuthMiddleware enforces bearer token authentication. Requests are rejected
// before any store access.
func AuthMiddleware(resolver OwnerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			ownerID, err := resolver.ResolveOwner(r.Context(), token)
			if err != nil || ownerID == "" {
				writeError(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}

			ctx := context.WithValue(r.Context(), ownerKey{}, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
