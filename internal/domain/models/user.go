// internal/domain/models/user.go
package models

import "time"

// User is one entry in the people directory.
//
// ID is a small integer allocated from the counters collection so that
// clients can pass comma-joined ID lists (huddles, group titles) around.
type User struct {
	ID         int64  `bson:"_id" json:"id"`
	FullName   string `bson:"full_name" json:"full_name"`
	FullNameCI string `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string `bson:"email" json:"email"`

	IsBot      bool   `bson:"is_bot" json:"is_bot"`
	BotOwnerID *int64 `bson:"bot_owner_id,omitempty" json:"bot_owner_id,omitempty"`

	AuthMethod   string `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // trust | password
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// EmailLocalPart returns the part of the email address before the '@'.
// Addresses without an '@' are returned whole.
func (u User) EmailLocalPart() string {
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}
