// internal/domain/models/presence.go
package models

import "time"

// Presence status values as reported by clients.
const (
	PresenceActive  = "active"
	PresenceIdle    = "idle"
	PresenceOffline = "offline"
)

// Presence is the most recent presence report for one user.
// A user with no Presence document has never been observed.
type Presence struct {
	UserID       int64     `bson:"_id" json:"user_id"`
	Status       string    `bson:"status" json:"status"` // active | idle | offline
	LastActiveAt time.Time `bson:"last_active_at" json:"last_active_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActive reports whether the record counts as present right now.
func (p Presence) IsActive() bool {
	return p.Status == PresenceActive
}

// IsValidPresenceStatus checks a client-supplied status value.
func IsValidPresenceStatus(s string) bool {
	switch s {
	case PresenceActive, PresenceIdle, PresenceOffline:
		return true
	}
	return false
}
