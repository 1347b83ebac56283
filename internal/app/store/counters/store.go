// internal/app/store/counters/store.go
package counters

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sequence names.
const (
	UserIDs = "user_ids"
)

// Store hands out monotonically increasing integer IDs, one sequence per
// counter document.
type Store struct {
	c *mongo.Collection
}

// New creates a new counters Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("counters")}
}

type counter struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"value"`
}

// Next returns the next value of the named sequence, starting at 1.
// The increment is a single atomic upsert, so concurrent callers never
// receive the same value.
func (s *Store) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, err
	}
	return c.Value, nil
}

// Reserve makes sure the sequence will never hand out a value <= floor.
// The seed loader uses it after importing users with fixed IDs.
func (s *Store) Reserve(ctx context.Context, name string, floor int64) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"value": floor}},
		options.Update().SetUpsert(true),
	)
	return err
}
