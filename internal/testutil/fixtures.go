package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/store/counters"
	"github.com/dalemusser/buddyhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a trust-auth user with the next integer ID.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, models.User{FullName: fullName, Email: email})
}

// CreateBot inserts a bot owned by ownerID.
func (f *Fixtures) CreateBot(ctx context.Context, fullName, email string, ownerID int64) models.User {
	f.t.Helper()
	return f.insertUser(ctx, models.User{FullName: fullName, Email: email, IsBot: true, BotOwnerID: &ownerID})
}

func (f *Fixtures) insertUser(ctx context.Context, u models.User) models.User {
	f.t.Helper()

	id, err := counters.New(f.db).Next(ctx, counters.UserIDs)
	if err != nil {
		f.t.Fatalf("failed to allocate user id: %v", err)
	}

	now := time.Now().UTC()
	u.ID = id
	u.FullNameCI = text.Fold(u.FullName)
	u.AuthMethod = models.AuthTrust
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// SetPresence writes a presence record for userID.
func (f *Fixtures) SetPresence(ctx context.Context, userID int64, status string, lastActive time.Time) models.Presence {
	f.t.Helper()

	p := models.Presence{
		UserID:       userID,
		Status:       status,
		LastActiveAt: lastActive.UTC(),
		UpdatedAt:    lastActive.UTC(),
	}
	_, err := f.db.Collection("presence").ReplaceOne(ctx, bson.M{"_id": userID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		f.t.Fatalf("failed to set test presence: %v", err)
	}
	return p
}

// SetStatus writes an away/status-text record for userID.
func (f *Fixtures) SetStatus(ctx context.Context, userID int64, away bool, statusText string) models.UserStatus {
	f.t.Helper()

	st := models.UserStatus{
		UserID:     userID,
		Away:       away,
		StatusText: statusText,
		UpdatedAt:  time.Now().UTC(),
	}
	_, err := f.db.Collection("user_status").ReplaceOne(ctx, bson.M{"_id": userID}, st, options.Replace().SetUpsert(true))
	if err != nil {
		f.t.Fatalf("failed to set test status: %v", err)
	}
	return st
}

// Mute records that userID muted mutedID.
func (f *Fixtures) Mute(ctx context.Context, userID, mutedID int64) {
	f.t.Helper()

	_, err := f.db.Collection("muted_users").InsertOne(ctx, models.MutedUser{
		UserID:      userID,
		MutedUserID: mutedID,
		DateMuted:   time.Now().UTC(),
	})
	if err != nil {
		f.t.Fatalf("failed to mute test user: %v", err)
	}
}
