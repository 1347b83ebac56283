package mutes

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/buddyhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrAlreadyMuted is returned when the pair already exists.
	ErrAlreadyMuted = errors.New("User already muted")
	// ErrNotMuted is returned when unmuting a pair that does not exist.
	ErrNotMuted = errors.New("User is not muted")
	// ErrCannotMuteSelf and ErrCannotMuteBot are rule violations checked
	// by callers before Mute.
	ErrCannotMuteSelf = errors.New("Cannot mute self")
	ErrCannotMuteBot  = errors.New("Cannot mute bot")
)

// Store holds (user, muted user) pairs.
type Store struct {
	c *mongo.Collection
}

// New creates a new mutes Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("muted_users")}
}

// IndexModels lists the unique pair index that Mute relies on.
func IndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "muted_user_id", Value: 1}},
			Options: options.Index().SetName("uniq_muted_users_pair").SetUnique(true),
		},
	}
}

// EnsureIndexes creates IndexModels on the muted_users collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, IndexModels())
	return err
}

// Mute records that userID muted mutedID.
func (s *Store) Mute(ctx context.Context, userID, mutedID int64, at time.Time) (models.MutedUser, error) {
	m := models.MutedUser{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		MutedUserID: mutedID,
		DateMuted:   at.UTC(),
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.MutedUser{}, ErrAlreadyMuted
		}
		return models.MutedUser{}, err
	}
	return m, nil
}

// Unmute removes the pair.
func (s *Store) Unmute(ctx context.Context, userID, mutedID int64) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "muted_user_id": mutedID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotMuted
	}
	return nil
}

// IsMuted reports whether userID has muted mutedID.
func (s *Store) IsMuted(ctx context.Context, userID, mutedID int64) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"user_id": userID, "muted_user_id": mutedID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MutedIDs returns the set of user IDs that userID has muted.
func (s *Store) MutedIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetProjection(bson.M{"muted_user_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[int64]bool{}
	for cur.Next(ctx) {
		var row struct {
			MutedUserID int64 `bson:"muted_user_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.MutedUserID] = true
	}
	return out, cur.Err()
}
