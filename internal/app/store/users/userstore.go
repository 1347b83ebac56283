package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/store/counters"
	"github.com/dalemusser/buddyhub/internal/app/system/normalize"
	"github.com/dalemusser/buddyhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned when no user matches.
	ErrNotFound = errors.New("user not found")
	// ErrBadPassword is returned by CheckPassword on a mismatch or when the
	// account does not use password auth.
	ErrBadPassword = errors.New("invalid email or password")

	errNameRequired  = errors.New("full name is required")
	errEmailRequired = errors.New("email is required")
	errBadAuthMethod = errors.New(`auth method must be "trust"|"password"`)
	errNoPassword    = errors.New("password auth requires a password")
	errBotOwner      = errors.New("bot owner must be an existing user")
)

type Store struct {
	c   *mongo.Collection
	ids *counters.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users"), ids: counters.New(db)}
}

// IndexModels lists the unique email index and the folded-name index
// used for directory ordering.
func IndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_users_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_fullnameci__id"),
		},
	}
}

// EnsureIndexes creates IndexModels on the users collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, IndexModels())
	return err
}

// Create inserts a new user after normalizing & validating fields.
// A non-empty password switches the account to password auth and is
// stored as a bcrypt hash.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.AuthMethod = normalize.AuthMethod(u.AuthMethod)

	if u.FullName == "" {
		return models.User{}, errNameRequired
	}
	if u.Email == "" {
		return models.User{}, errEmailRequired
	}

	if password != "" && u.AuthMethod == "" {
		u.AuthMethod = models.AuthPassword
	}
	if u.AuthMethod == "" {
		u.AuthMethod = models.AuthTrust
	}
	if !models.IsValidAuthMethod(u.AuthMethod) {
		return models.User{}, errBadAuthMethod
	}
	if u.AuthMethod == models.AuthPassword {
		if password == "" {
			return models.User{}, errNoPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = string(hash)
	}

	if u.IsBot && u.BotOwnerID != nil {
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": *u.BotOwnerID})
		if err != nil {
			return models.User{}, err
		}
		if n == 0 {
			return models.User{}, errBotOwner
		}
	}
	if !u.IsBot {
		u.BotOwnerID = nil
	}

	// Check the email first so a duplicate does not burn an ID.
	if _, err := s.GetByEmail(ctx, u.Email); err == nil {
		return models.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}

	id, err := s.ids.Next(ctx, counters.UserIDs)
	if err != nil {
		return models.User{}, err
	}
	u.ID = id

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by integer ID.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns the whole directory ordered by folded name, then ID.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"password_hash": 0})

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the directory size.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// UpdateFullName renames a user and refreshes the folded name.
func (s *Store) UpdateFullName(ctx context.Context, id int64, fullName string) error {
	fullName = normalize.Name(fullName)
	if fullName == "" {
		return errNameRequired
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"full_name":    fullName,
		"full_name_ci": text.Fold(fullName),
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CheckPassword authenticates an email/password pair. Trust accounts
// succeed on email alone and ignore password.
func (s *Store) CheckPassword(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBadPassword
		}
		return nil, err
	}
	switch strings.ToLower(u.AuthMethod) {
	case models.AuthTrust:
		return u, nil
	case models.AuthPassword:
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return nil, ErrBadPassword
		}
		return u, nil
	}
	return nil, ErrBadPassword
}
