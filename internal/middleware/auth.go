package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"raiseme/internal/auth"
)

type identityKeyType struct{}

var identityKey identityKeyType

// RequireAccess authenticates the request with the bearer token in the
// Authorization header and rejects anything but a valid access token.
func RequireAccess(authority *auth.Authority) func(http.Handler) http.Handler {
	return require(authority, false)
}

// RequireToken is RequireAccess but accepts either token type. Logout
// uses it so a refresh token can be revoked directly.
func RequireToken(authority *auth.Authority) func(http.Handler) http.Handler {
	return require(authority, true)
}

func require(authority *auth.Authority, anyType bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				unauthorized(w, "missing or malformed authorization header")
				return
			}
			id, err := authority.Validate(r.Context(), token)
			if err != nil {
				unauthorized(w, validationMessage(err))
				return
			}
			if !anyType && id.Type != auth.TokenTypeAccess {
				unauthorized(w, "access token required")
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), id)))
		})
	}
}

// BearerToken extracts the raw credential from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// ContextWithIdentity stores the authenticated identity in the context.
func ContextWithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, auth.ErrTokenRevoked):
		return "token revoked"
	default:
		return "invalid token"
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": msg},
	})
}
