// Package localjwt verifies access tokens locally with the project JWT
// secret (HS256). No network round trip, but revoked tokens stay valid
// until they expire.
package localjwt

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"newsstash/internal/identity"
)

// Provider verifies HS256 tokens signed with the shared project secret.
type Provider struct {
	secret []byte
}

// New creates a provider verifying against secret.
func New(secret string) *Provider {
	return &Provider{secret: []byte(secret)}
}

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate parses and verifies token, returning the identity carried in
// its claims. The subject claim is required.
func (p *Provider) Authenticate(_ context.Context, token string) (*identity.Identity, error) {
	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("localjwt: %v: %w", err, identity.ErrInvalidToken)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("localjwt: missing subject: %w", identity.ErrInvalidToken)
	}

	return &identity.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
