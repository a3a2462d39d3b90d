// Package apperror defines the typed failures used across the application.
// Each kind carries a fixed HTTP status; the boundary serializes the status
// and message, never the internal cause.
package apperror

import (
	"errors"
	"net/http"
)

// Error is a classified failure with an HTTP-equivalent status.
// Message is safe to return to callers. Err, when set, is the internal
// cause and is only ever logged.
type Error struct {
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the internal cause to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest indicates a missing or malformed identifier or field.
func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Unauthorized indicates a missing/invalid token or an ownership mismatch.
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// NotFound indicates a lookup by id that yielded no row.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Conflict indicates a duplicate (title, user_id) pair on create.
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

// Database wraps a failure reported by the persistence layer. The store's
// message text is preserved in the user-facing message.
func Database(msg string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg}
}

// RequestTimeout indicates an operation exceeded its deadline.
func RequestTimeout(msg string) *Error {
	return &Error{Status: http.StatusRequestTimeout, Message: msg}
}

// Internal wraps an unexpected failure. The cause is kept for logging;
// callers only ever see the generic message.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Internal server error", Err: err}
}

// Classify implements the rethrow-if-already-classified policy: a typed
// error passes through unchanged, anything else becomes Internal.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// From extracts the typed error from err, if any.
func From(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}
