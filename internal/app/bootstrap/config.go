// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/system/buddylist"
	"github.com/dalemusser/buddyhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for buddyhub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: BUDDYHUB_MONGO_URI, BUDDYHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "buddyhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_timeout_short", Default: "5s", Desc: "Deadline for single-document MongoDB calls"},
	{Name: "mongo_timeout_medium", Default: "10s", Desc: "Deadline for collection-wide MongoDB reads and index setup"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "buddyhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session cookie lifetime (e.g., 24h, 720h)"},

	// Buddy list
	{Name: "buddy_list_max_size", Default: buddylist.DefaultMaxSize, Desc: "Max users in an unfiltered buddy list (0 disables the cap)"},
	{Name: "hide_last_active", Default: false, Desc: "Hide last-active times from other users"},
	{Name: "display_timezone", Default: "UTC", Desc: "IANA zone for relative date labels (e.g., America/Chicago)"},

	// Presence sweeper
	{Name: "presence_idle_after", Default: "140s", Desc: "Heartbeat silence before active becomes idle"},
	{Name: "presence_offline_after", Default: "15m", Desc: "Heartbeat silence before a user becomes offline"},
	{Name: "presence_sweep_interval", Default: "1m", Desc: "How often the presence sweeper runs"},

	// Seed
	{Name: "seed_file", Default: "", Desc: "Optional YAML directory seed applied at startup"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, BUDDYHUB_* for app) and
// command-line flags, with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "BUDDYHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	tz := appValues.String("display_timezone")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("invalid display_timezone %q: %w", tz, err)
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoTimeouts: timeouts.Config{
			Short:  appValues.Duration("mongo_timeout_short", timeouts.DefaultShort),
			Medium: appValues.Duration("mongo_timeout_medium", timeouts.DefaultMedium),
		},

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 30*24*time.Hour),

		BuddyListMaxSize: appValues.Int("buddy_list_max_size"),
		HideLastActive:   appValues.Bool("hide_last_active"),
		DisplayLocation:  loc,

		PresenceIdleAfter:     appValues.Duration("presence_idle_after", 140*time.Second),
		PresenceOfflineAfter:  appValues.Duration("presence_offline_after", 15*time.Minute),
		PresenceSweepInterval: appValues.Duration("presence_sweep_interval", time.Minute),

		SeedFile: appValues.String("seed_file"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI format is checked here to catch configuration errors
// before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.BuddyListMaxSize < 0 {
		return fmt.Errorf("buddy_list_max_size must be >= 0, got %d", appCfg.BuddyListMaxSize)
	}
	if appCfg.MongoTimeouts.Short < 0 || appCfg.MongoTimeouts.Medium < 0 {
		return fmt.Errorf("mongo timeouts must not be negative")
	}
	if appCfg.PresenceIdleAfter <= 0 || appCfg.PresenceOfflineAfter <= 0 || appCfg.PresenceSweepInterval <= 0 {
		return fmt.Errorf("presence durations must be positive")
	}
	if appCfg.PresenceOfflineAfter < appCfg.PresenceIdleAfter {
		return fmt.Errorf("presence_offline_after (%s) must not be shorter than presence_idle_after (%s)",
			appCfg.PresenceOfflineAfter, appCfg.PresenceIdleAfter)
	}
	return nil
}
