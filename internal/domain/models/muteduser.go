// internal/domain/models/muteduser.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MutedUser records that UserID has muted MutedUserID.
type MutedUser struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      int64              `bson:"user_id" json:"user_id"`
	MutedUserID int64              `bson:"muted_user_id" json:"muted_user_id"`
	DateMuted   time.Time          `bson:"date_muted" json:"date_muted"`
}
