package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChat struct {
	answer string
	err    error

	gotQuestion string
}

func (s *stubChat) Ask(_ context.Context, question string) (string, error) {
	s.gotQuestion = question
	return s.answer, s.err
}

func TestAIChatHandler(t *testing.T) {
	provider := &stubChat{answer: "Grand, thanks."}
	handler := AIChatHandler{Provider: provider}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/aichat?question=how+are+you", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "how are you", provider.gotQuestion)

	var body aiChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "Grand, thanks.", body.Message)
}

func TestAIChatHandlerMissingQuestion(t *testing.T) {
	handler := AIChatHandler{Provider: &stubChat{}}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/aichat", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "question is required")
}

func TestAIChatHandlerProviderFailure(t *testing.T) {
	handler := AIChatHandler{Provider: &stubChat{err: errors.New("api key invalid")}}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/aichat?question=x", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// Provider failures must not leak their cause to the client.
	assert.NotContains(t, rec.Body.String(), "api key invalid")
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
