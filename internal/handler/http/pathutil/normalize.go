package pathutil

import (
	"regexp"
	"strings"
)

// pathPatterns maps dynamic routes to stable templates, evaluated in order.
// Pre-compiled at initialization.
var pathPatterns = []struct {
	pattern  *regexp.Regexp
	template string
}{
	{pattern: regexp.MustCompile(`^/articles/\d+$`), template: "/articles/:id"},
}

// NormalizePath maps id-bearing paths to template form so metric labels
// stay bounded. Static paths come back unchanged; query parameters and a
// trailing slash are stripped first.
//
//	NormalizePath("/articles/123")        // "/articles/:id"
//	NormalizePath("/articles/123?x=1")    // "/articles/:id"
//	NormalizePath("/health")              // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
