// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/buddyhub/internal/app/seed"
	"github.com/dalemusser/buddyhub/internal/app/store/presence"
	"github.com/dalemusser/buddyhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// sweeper is started in Startup and stopped in Shutdown.
var sweeper *workers.PresenceSweeper

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built: the
// optional directory seed and the presence sweeper.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SeedFile != "" {
		if err := applySeedFile(ctx, deps, appCfg.SeedFile, logger); err != nil {
			return err
		}
	}

	sweeper = workers.NewPresenceSweeper(
		presence.New(deps.BuddyHubMongoDatabase),
		logger,
		appCfg.PresenceSweepInterval,
		appCfg.PresenceIdleAfter,
		appCfg.PresenceOfflineAfter,
	)
	sweeper.Start()
	return nil
}

// applySeedFile loads path and creates any directory entries that are
// missing. Existing users are left untouched.
func applySeedFile(ctx context.Context, deps DBDeps, path string, logger *zap.Logger) error {
	f, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	if _, err := seed.Apply(ctx, deps.BuddyHubMongoDatabase, f, logger); err != nil {
		return fmt.Errorf("apply seed %s: %w", path, err)
	}
	return nil
}
