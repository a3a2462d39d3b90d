// Package pathutil extracts identifiers from URL paths.
package pathutil

import (
	"errors"
	"strings"
)

// ErrInvalidID is returned when the ID segment of a URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID returns the trailing ID segment of path after removing prefix.
// The segment must be non-empty and must not contain further slashes.
//
//	id, err := ExtractID("/articles/41", "/articles/")  // "41", nil
func ExtractID(path, prefix string) (string, error) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", ErrInvalidID
	}
	return id, nil
}
