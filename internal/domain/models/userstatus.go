// internal/domain/models/userstatus.go
package models

import "time"

// MaxStatusTextRunes bounds the free-text status message.
const MaxStatusTextRunes = 60

// UserStatus is the user-set away flag and status message.
// It is independent of Presence: a user can be away while active.
type UserStatus struct {
	UserID     int64     `bson:"_id" json:"user_id"`
	Away       bool      `bson:"away" json:"away"`
	StatusText string    `bson:"status_text,omitempty" json:"status_text"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
