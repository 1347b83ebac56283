// internal/app/system/buddylist/match.go
package buddylist

import (
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/buddyhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// NormalizeQuery folds a search string for matching. Blank input and input
// that is not valid UTF-8 normalize to "" (no filter).
func NormalizeQuery(query string) string {
	if !utf8.ValidString(query) {
		return ""
	}
	return text.Fold(strings.TrimSpace(query))
}

// Matches reports whether u matches query. The folded query must be a
// prefix of one whitespace-delimited token of the full name, or a prefix
// of the email local part. Substrings inside a token do not match.
func Matches(u models.User, query string) bool {
	return matchesFolded(u, NormalizeQuery(query))
}

func matchesFolded(u models.User, q string) bool {
	if q == "" {
		return true
	}
	for _, tok := range strings.Fields(foldedName(u)) {
		if strings.HasPrefix(tok, q) {
			return true
		}
	}
	return strings.HasPrefix(text.Fold(u.EmailLocalPart()), q)
}

// foldedName prefers the stored FullNameCI and folds FullName otherwise.
func foldedName(u models.User) string {
	if u.FullNameCI != "" {
		return u.FullNameCI
	}
	return text.Fold(u.FullName)
}
