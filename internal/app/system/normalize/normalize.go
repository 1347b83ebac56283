// Package normalize cleans user-supplied values before they are stored or
// compared.
package normalize

import "strings"

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name and collapses inner runs of whitespace.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// AuthMethod trims and lowercases an auth method value.
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// PresenceStatus trims and lowercases a client-reported presence status.
// An empty value means "active", the status every heartbeat implies.
func PresenceStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "active"
	}
	return s
}

// QueryParam trims a search query, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
