// Package seed loads a YAML description of the people directory and
// writes it into the stores.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/store/presence"
	userstore "github.com/dalemusser/buddyhub/internal/app/store/users"
	"github.com/dalemusser/buddyhub/internal/app/system/normalize"
	"github.com/dalemusser/buddyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is the top level of a seed document.
type File struct {
	Users []Entry `yaml:"users"`
}

// Entry describes one directory entry.
type Entry struct {
	FullName      string `yaml:"full_name"`
	Email         string `yaml:"email"`
	IsBot         bool   `yaml:"is_bot"`
	BotOwnerEmail string `yaml:"bot_owner_email"`
	Password      string `yaml:"password"`
	Presence      string `yaml:"presence"`
}

// Validate checks the document without touching the database. Bot owners
// must be listed in the same file and must not be bots themselves.
func (f File) Validate() error {
	if len(f.Users) == 0 {
		return errors.New("seed: no users listed")
	}
	byEmail := make(map[string]Entry, len(f.Users))
	for i, u := range f.Users {
		email := normalize.Email(u.Email)
		switch {
		case normalize.Name(u.FullName) == "":
			return fmt.Errorf("seed: users[%d]: full_name is required", i)
		case email == "":
			return fmt.Errorf("seed: users[%d]: email is required", i)
		}
		if _, dup := byEmail[email]; dup {
			return fmt.Errorf("seed: users[%d]: duplicate email %q", i, email)
		}
		if u.Presence != "" && !models.IsValidPresenceStatus(normalize.PresenceStatus(u.Presence)) {
			return fmt.Errorf("seed: users[%d]: presence must be active|idle|offline, got %q", i, u.Presence)
		}
		if !u.IsBot && u.BotOwnerEmail != "" {
			return fmt.Errorf("seed: users[%d]: bot_owner_email set on a non-bot", i)
		}
		byEmail[email] = u
	}
	for i, u := range f.Users {
		if u.BotOwnerEmail == "" {
			continue
		}
		owner, ok := byEmail[normalize.Email(u.BotOwnerEmail)]
		if !ok {
			return fmt.Errorf("seed: users[%d]: bot owner %q is not listed", i, u.BotOwnerEmail)
		}
		if owner.IsBot {
			return fmt.Errorf("seed: users[%d]: bot owner %q is a bot", i, u.BotOwnerEmail)
		}
	}
	return nil
}

// Parse decodes and validates a seed document.
func Parse(data []byte) (File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return File{}, errors.New("seed: document is empty")
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("seed: decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// LoadFile reads and parses a seed file from disk.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("seed: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Result counts what Apply did.
type Result struct {
	Created  int
	Existing int
	Presence int
}

// Apply creates the users that do not exist yet (matched by email) and
// writes any listed presence. Humans are created before bots so owners
// resolve. Running it twice creates nothing new.
func Apply(ctx context.Context, db *mongo.Database, f File, logger *zap.Logger) (Result, error) {
	users := userstore.New(db)
	pres := presence.New(db)
	now := time.Now()

	var res Result
	ids := make(map[string]int64, len(f.Users))

	for _, pass := range []bool{false, true} {
		for _, e := range f.Users {
			if e.IsBot != pass {
				continue
			}
			email := normalize.Email(e.Email)

			existing, err := users.GetByEmail(ctx, email)
			switch {
			case err == nil:
				ids[email] = existing.ID
				res.Existing++
				continue
			case !errors.Is(err, userstore.ErrNotFound):
				return res, err
			}

			u := models.User{FullName: e.FullName, Email: email, IsBot: e.IsBot}
			if e.BotOwnerEmail != "" {
				owner := ids[normalize.Email(e.BotOwnerEmail)]
				u.BotOwnerID = &owner
			}
			created, err := users.Create(ctx, u, e.Password)
			if err != nil {
				return res, fmt.Errorf("seed: create %s: %w", email, err)
			}
			ids[email] = created.ID
			res.Created++
			logger.Debug("seeded user", zap.Int64("user_id", created.ID), zap.String("email", email))
		}
	}

	for _, e := range f.Users {
		if e.Presence == "" {
			continue
		}
		id := ids[normalize.Email(e.Email)]
		if err := pres.Report(ctx, id, normalize.PresenceStatus(e.Presence), now); err != nil {
			return res, fmt.Errorf("seed: presence for %s: %w", e.Email, err)
		}
		res.Presence++
	}

	logger.Info("seed applied",
		zap.Int("created", res.Created),
		zap.Int("existing", res.Existing),
		zap.Int("presence", res.Presence))
	return res, nil
}
