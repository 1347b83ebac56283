// internal/app/store/presence/store.go
package presence

import (
	"context"
	"time"

	"github.com/dalemusser/buddyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps one presence record per user, keyed by user ID.
type Store struct {
	c *mongo.Collection
}

// New creates a new presence Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("presence")}
}

// IndexModels lists the index the sweeper filters on.
func IndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "last_active_at", Value: 1}},
			Options: options.Index().SetName("idx_presence_status_lastactive"),
		},
	}
}

// EnsureIndexes creates IndexModels on the presence collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, IndexModels())
	return err
}

// Report records a client presence report. An active report moves
// last_active_at to now; idle and offline reports keep the previous value
// (or now, for a user seen for the first time).
func (s *Store) Report(ctx context.Context, userID int64, status string, now time.Time) error {
	now = now.UTC()
	set := bson.M{
		"status":     status,
		"updated_at": now,
	}
	setOnInsert := bson.M{}
	if status == models.PresenceActive {
		set["last_active_at"] = now
	} else {
		setOnInsert["last_active_at"] = now
	}

	update := bson.M{"$set": set}
	if len(setOnInsert) > 0 {
		update["$setOnInsert"] = setOnInsert
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, update, options.Update().SetUpsert(true))
	return err
}

// Put replaces the record wholesale. The seed loader and tests use it to
// place records at a fixed point in time.
func (s *Store) Put(ctx context.Context, p models.Presence) error {
	p.LastActiveAt = p.LastActiveAt.UTC()
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.LastActiveAt
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": p.UserID}, p, options.Replace().SetUpsert(true))
	return err
}

// Get returns the record for userID and whether one exists.
func (s *Store) Get(ctx context.Context, userID int64) (models.Presence, bool, error) {
	var p models.Presence
	err := s.c.FindOne(ctx, bson.M{"_id": userID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Presence{}, false, nil
	}
	if err != nil {
		return models.Presence{}, false, err
	}
	return p, true, nil
}

// All returns every presence record.
func (s *Store) All(ctx context.Context) ([]models.Presence, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Presence
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Demote moves records whose status is one of from and whose
// last_active_at is before cutoff to status to, stamping updated_at with
// now. It returns the number of records changed.
func (s *Store) Demote(ctx context.Context, from []string, to string, cutoff, now time.Time) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{
			"status":         bson.M{"$in": from},
			"last_active_at": bson.M{"$lt": cutoff.UTC()},
		},
		bson.M{"$set": bson.M{
			"status":     to,
			"updated_at": now.UTC(),
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
