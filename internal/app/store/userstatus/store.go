package userstatus

import (
	"context"
	"time"

	"github.com/dalemusser/buddyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps the away flag and status text, one document per user.
type Store struct {
	c *mongo.Collection
}

// New creates a new userstatus Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_status")}
}

// Set upserts the caller's away flag and status text. The text is stored
// as given; callers sanitize it first.
func (s *Store) Set(ctx context.Context, userID int64, away bool, statusText string) (models.UserStatus, error) {
	st := models.UserStatus{
		UserID:     userID,
		Away:       away,
		StatusText: statusText,
		UpdatedAt:  time.Now().UTC(),
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": userID}, st, options.Replace().SetUpsert(true))
	if err != nil {
		return models.UserStatus{}, err
	}
	return st, nil
}

// Get returns the record for userID, or a zero record (not away, no text)
// when none was ever set.
func (s *Store) Get(ctx context.Context, userID int64) (models.UserStatus, error) {
	var st models.UserStatus
	err := s.c.FindOne(ctx, bson.M{"_id": userID}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return models.UserStatus{UserID: userID}, nil
	}
	if err != nil {
		return models.UserStatus{}, err
	}
	return st, nil
}

// All returns every record that carries an away flag or status text.
func (s *Store) All(ctx context.Context) ([]models.UserStatus, error) {
	cur, err := s.c.Find(ctx, bson.M{"$or": bson.A{
		bson.M{"away": true},
		bson.M{"status_text": bson.M{"$nin": bson.A{"", nil}}},
	}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.UserStatus
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
