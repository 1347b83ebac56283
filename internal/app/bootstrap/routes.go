// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	buddylistfeature "github.com/dalemusser/buddyhub/internal/app/features/buddylist"
	healthfeature "github.com/dalemusser/buddyhub/internal/app/features/health"
	heartbeatfeature "github.com/dalemusser/buddyhub/internal/app/features/heartbeat"
	loginfeature "github.com/dalemusser/buddyhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/buddyhub/internal/app/features/logout"
	mutesfeature "github.com/dalemusser/buddyhub/internal/app/features/mutes"
	statusfeature "github.com/dalemusser/buddyhub/internal/app/features/status"
	"github.com/dalemusser/buddyhub/internal/app/store/mutes"
	"github.com/dalemusser/buddyhub/internal/app/store/presence"
	userstore "github.com/dalemusser/buddyhub/internal/app/store/users"
	"github.com/dalemusser/buddyhub/internal/app/store/userstatus"
	"github.com/dalemusser/buddyhub/internal/app/system/auth"
	"github.com/dalemusser/buddyhub/internal/app/system/buddylist"
	"github.com/dalemusser/buddyhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It builds the session manager and the
// stores, applies session middleware, and mounts the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.BuddyHubMongoDatabase

	// LoadSessionUser re-reads the user on each request so renames and
	// deletions take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	users := userstore.New(db)
	presenceStore := presence.New(db)
	statuses := userstatus.New(db)
	mutesStore := mutes.New(db)

	selector := buddylist.New(appCfg.BuddyListMaxSize, logger.Named("buddylist"))
	selector.Formatter = buddylist.RelativeFormatter{Location: appCfg.DisplayLocation}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.BuddyHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(users, presenceStore, sessionMgr, ratelimit.NewLoginLimiter(), logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(presenceStore, sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Buddy list
	loader := buddylistfeature.NewLoader(users, presenceStore, statuses, mutesStore, appCfg.HideLastActive)
	buddyHandler := buddylistfeature.NewHandler(loader, selector, logger)
	r.Mount("/api/buddies", buddylistfeature.Routes(buddyHandler, sessionMgr))

	// Presence, away status and mutes
	heartbeatHandler := heartbeatfeature.NewHandler(presenceStore, logger)
	r.Mount("/api/presence", heartbeatfeature.Routes(heartbeatHandler, sessionMgr))

	statusHandler := statusfeature.NewHandler(statuses, logger)
	r.Mount("/api/status", statusfeature.Routes(statusHandler, sessionMgr))

	mutesHandler := mutesfeature.NewHandler(users, mutesStore, logger)
	r.Mount("/api/muted-users", mutesfeature.Routes(mutesHandler, sessionMgr))

	return r, nil
}
