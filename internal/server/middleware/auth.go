// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// ownerKey is the context key for the authenticated session owner.
const ownerKey ContextKey = "owner"

// TokenValidator validates bearer tokens. Any signing scheme can sit behind it.
type TokenValidator interface {
	ValidateToken(tokenString string) (OwnerGetter, error)
}

// OwnerGetter extracts the session owner from validated token claims.
type OwnerGetter interface {
	GetOwner() string
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token's owner in the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			owner := claims.GetOwner()
			if owner == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

// bearerToken parses "Bearer <token>", accepting any case for the scheme.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// WithOwner returns a context carrying owner.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// GetOwner extracts the authenticated owner from the request context.
func GetOwner(r *http.Request) (string, error) {
	owner, ok := r.Context().Value(ownerKey).(string)
	if !ok || owner == "" {
		return "", fmt.Errorf("owner not found in request context")
	}
	return owner, nil
}

// OwnerKey returns the context key for the owner (for testing purposes).
func OwnerKey() ContextKey {
	return ownerKey
}
