package review

import (
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_.]`)

// Sanitize constrains s to alphanumerics, whitespace, hyphen, underscore and
// dot, truncates the result to max characters and trims surrounding
// whitespace. The function is idempotent.
func Sanitize(s string, max int) string {
	if s == "" || max <= 0 {
		return ""
	}

	safe := unsafeChars.ReplaceAllString(s, "")
	if len(safe) > max {
		safe = safe[:max]
	}

	return strings.TrimSpace(safe)
}
