// Package gotrue resolves access tokens against the hosted auth service's
// user endpoint. Every lookup is a round trip, so token revocation takes
// effect immediately at the cost of latency.
package gotrue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"newsstash/internal/identity"
)

const defaultRequestTimeout = 10 * time.Second

// Provider authenticates tokens by calling GET {baseURL}/auth/v1/user.
type Provider struct {
	baseURL string
	anonKey string
	client  *http.Client
}

// New creates a provider for the project at baseURL using anonKey as the
// service API key.
func New(baseURL, anonKey string) *Provider {
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Authenticate resolves token via the remote user endpoint. Any non-200
// response is treated as an invalid token; transport failures surface as
// plain errors so the caller can distinguish outage from rejection.
func (p *Provider) Authenticate(ctx context.Context, token string) (*identity.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("gotrue: build request: %w", err)
	}
	req.Header.Set("apikey", p.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gotrue: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gotrue: status %d: %w", resp.StatusCode, identity.ErrInvalidToken)
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("gotrue: decode response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("gotrue: response without user id: %w", identity.ErrInvalidToken)
	}

	return &identity.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
