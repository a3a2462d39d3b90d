// Package identity defines the contract for resolving an access token into
// the authenticated user.
package identity

import (
	"context"
	"errors"
)

// ErrInvalidToken reports that a token was present but could not be
// resolved to a user (expired, malformed, bad signature, revoked).
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller as resolved from an access token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// Provider resolves a bearer token into an Identity. Implementations return
// ErrInvalidToken (possibly wrapped) when the token does not authenticate.
type Provider interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}
