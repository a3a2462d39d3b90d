// Package auth provides the bearer-token guard for protected routes.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"newsstash/internal/apperror"
	"newsstash/internal/handler/http/respond"
	"newsstash/internal/identity"
)

type ctxKey int

const (
	identityKey ctxKey = iota
	tokenKey
)

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, id *identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the authenticated identity, or nil when the
// request did not pass the guard.
func IdentityFromContext(ctx context.Context) *identity.Identity {
	id, _ := ctx.Value(identityKey).(*identity.Identity)
	return id
}

// WithToken returns a context carrying the raw bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the raw bearer token of the request, or "".
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// bearerToken extracts the token from the Authorization header. The empty
// string means no usable token was supplied.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Guard returns middleware that authenticates the bearer token with
// provider and stores the resolved identity plus the raw token in the
// request context. Requests without a token are rejected before the
// provider is consulted.
func Guard(provider identity.Provider, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respond.Error(w, r, apperror.Unauthorized("No token provided"))
				return
			}

			id, err := provider.Authenticate(r.Context(), token)
			if err != nil || id == nil {
				if err != nil {
					logger.DebugContext(r.Context(), "token rejected",
						slog.String("error", err.Error()))
				}
				respond.Error(w, r, apperror.Unauthorized("Invalid token"))
				return
			}

			ctx := WithToken(WithIdentity(r.Context(), id), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
