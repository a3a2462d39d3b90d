package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"newsstash/internal/apperror"
)

func TestKindsCarryStatus(t *testing.T) {
	cases := []struct {
		name string
		err  *apperror.Error
		want int
	}{
		{"bad request", apperror.BadRequest("Article ID is required"), http.StatusBadRequest},
		{"unauthorized", apperror.Unauthorized("Invalid token"), http.StatusUnauthorized},
		{"not found", apperror.NotFound("Article with id 9 not found"), http.StatusNotFound},
		{"conflict", apperror.Conflict("Article already exists"), http.StatusConflict},
		{"database", apperror.Database("connection refused"), http.StatusInternalServerError},
		{"timeout", apperror.RequestTimeout("Request timeout"), http.StatusRequestTimeout},
		{"internal", apperror.Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Status != tc.want {
				t.Errorf("status = %d, want %d", tc.err.Status, tc.want)
			}
		})
	}
}

func TestClassifyPassesTypedThrough(t *testing.T) {
	typed := apperror.Conflict("Article already exists")

	got := apperror.Classify(typed)
	if got != typed {
		t.Errorf("classified typed error was replaced: %v", got)
	}

	// Wrapped typed errors are still recognized.
	wrapped := fmt.Errorf("create: %w", typed)
	got = apperror.Classify(wrapped)
	if got != typed {
		t.Errorf("classified wrapped typed error was replaced: %v", got)
	}
}

func TestClassifyNormalizesUnexpected(t *testing.T) {
	cause := errors.New("nil pointer somewhere")

	got := apperror.Classify(cause)
	if got.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", got.Status)
	}
	if got.Message != "Internal server error" {
		t.Errorf("message = %q, want generic message", got.Message)
	}
	if !errors.Is(got, cause) {
		t.Error("internal cause is not preserved for logging")
	}
}

func TestInternalNeverExposesCause(t *testing.T) {
	got := apperror.Internal(errors.New("password=hunter2"))
	if got.Message == got.Error() {
		t.Error("user-facing message must differ from the internal cause")
	}
}
