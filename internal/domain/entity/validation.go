package entity

import (
	"fmt"
	"net/url"
	"time"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// ValidationError reports which field failed validation and why.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ValidateURL validates the format of a URL field.
// The URL must be well-formed, use the http or https scheme, and have a host.
func ValidateURL(field, rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not exceed %d characters", maxURLLength),
		}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: field, Message: "must be a valid URL"}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Field: field, Message: "must use http or https scheme"}
	}
	if parsed.Host == "" {
		return &ValidationError{Field: field, Message: "must have a valid host"}
	}

	return nil
}

// dateLayouts are the accepted date formats: full RFC3339 timestamps or
// calendar dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ValidateDate checks that the value is an ISO-8601 date string.
func ValidateDate(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return nil
		}
	}
	return &ValidationError{Field: field, Message: "must be an ISO-8601 date string"}
}
