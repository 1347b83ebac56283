// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/buddyhub/internal/app/system/timeouts"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// ports, TLS, logging level and request limits; everything below is
// specific to buddyhub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string          // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string          // Database name within MongoDB
	MongoMaxPoolSize uint64          // Max connections in the driver pool
	MongoTimeouts    timeouts.Config // Short and Medium deadlines; zero keeps the default

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: buddyhub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Buddy list
	BuddyListMaxSize int            // Unfiltered list cap (0 disables capping)
	HideLastActive   bool           // Report "Unknown" instead of last-active times
	DisplayLocation  *time.Location // Zone used for "Yesterday" / "Jan 2" labels

	// Presence sweeper
	PresenceIdleAfter     time.Duration // Heartbeat silence before active becomes idle
	PresenceOfflineAfter  time.Duration // Heartbeat silence before anything becomes offline
	PresenceSweepInterval time.Duration // How often the sweeper runs

	// Optional YAML seed applied at startup (see internal/app/seed)
	SeedFile string
}
