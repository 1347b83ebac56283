// Package htmlsanitize strips markup from user-supplied text.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce sync.Once
	strict     *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// PlainText removes every tag from s, decodes entities, and collapses
// whitespace. The result is meant for JSON, not for direct HTML output.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	clean := html.UnescapeString(strictPolicy().Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

// StatusText cleans a status message and cuts it to maxRunes runes.
func StatusText(s string, maxRunes int) string {
	clean := PlainText(s)
	if maxRunes <= 0 {
		return clean
	}
	r := []rune(clean)
	if len(r) <= maxRunes {
		return clean
	}
	return strings.TrimSpace(string(r[:maxRunes]))
}

// IsPlainText reports whether s contains no HTML tags.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}
