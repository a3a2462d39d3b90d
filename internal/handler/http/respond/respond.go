// Package respond serializes HTTP responses as JSON. Failures are rendered
// in a stable envelope carrying the HTTP status, a timestamp, the request
// path and a human-readable message; internal causes are logged, never sent.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"newsstash/internal/apperror"
	"newsstash/internal/handler/http/requestid"
)

// ErrorBody is the wire shape of every failure response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; the failure can only be logged.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error classifies err and writes the failure envelope. Typed errors keep
// their status and message; anything else is normalized to a 500 with a
// generic message while the cause is logged with the request ID.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.Classify(err)

	if appErr.Err != nil {
		slog.Default().Error("request failed",
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", appErr.Status),
			slog.Any("error", appErr.Err))
	}

	JSON(w, appErr.Status, ErrorBody{
		StatusCode: appErr.Status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
		Error:      http.StatusText(appErr.Status),
		Message:    appErr.Message,
	})
}
