package gotrue_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsstash/internal/identity"
	"newsstash/internal/infra/identity/gotrue"
)

func TestAuthenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-1","email":"jane@example.com","role":"authenticated"}`))
	}))
	defer srv.Close()

	provider := gotrue.New(srv.URL, "anon-key")
	id, err := provider.Authenticate(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "jane@example.com", id.Email)
	assert.Equal(t, "authenticated", id.Role)
}

func TestAuthenticateRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid JWT"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	provider := gotrue.New(srv.URL, "anon-key")
	_, err := provider.Authenticate(context.Background(), "bad-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, identity.ErrInvalidToken))
}

func TestAuthenticateMissingUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	provider := gotrue.New(srv.URL, "anon-key")
	_, err := provider.Authenticate(context.Background(), "odd-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, identity.ErrInvalidToken))
}

func TestAuthenticateTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	provider := gotrue.New(srv.URL, "anon-key")
	_, err := provider.Authenticate(context.Background(), "any-token")
	require.Error(t, err)
	// An outage must not masquerade as a rejected token.
	assert.False(t, errors.Is(err, identity.ErrInvalidToken))
}
