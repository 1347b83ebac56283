// internal/domain/models/authmethods.go
package models

import "strings"

// Auth methods a directory account can sign in with.
const (
	AuthTrust    = "trust"    // email alone signs in (dev and kiosk deployments)
	AuthPassword = "password" // bcrypt hash in PasswordHash
)

// AuthMethod represents an authentication method option.
type AuthMethod struct {
	Value string // The value stored in the database
	Label string // The display label
}

// AllAuthMethods contains all supported auth methods with their display labels.
var AllAuthMethods = []AuthMethod{
	{Value: AuthTrust, Label: "Trust"},
	{Value: AuthPassword, Label: "Password"},
}

// IsValidAuthMethod checks if a value is a valid auth method.
func IsValidAuthMethod(value string) bool {
	for _, m := range AllAuthMethods {
		if m.Value == value {
			return true
		}
	}
	return false
}

// AuthMethodLabel returns the display label for a stored value, or the
// value itself when it is not a known method.
func AuthMethodLabel(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, m := range AllAuthMethods {
		if m.Value == v {
			return m.Label
		}
	}
	return value
}
