package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	userstore "github.com/dalemusser/buddyhub/internal/app/store/users"
	"github.com/dalemusser/buddyhub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func testAppConfig() AppConfig {
	return AppConfig{
		MongoURI:              "mongodb://localhost:27017",
		MongoDatabase:         "buddyhub_test",
		SessionKey:            "test-session-key-must-be-32-chars-long",
		SessionName:           "test-session",
		SessionMaxAge:         time.Hour,
		BuddyListMaxSize:      400,
		DisplayLocation:       time.UTC,
		PresenceIdleAfter:     140 * time.Second,
		PresenceOfflineAfter:  15 * time.Minute,
		PresenceSweepInterval: time.Minute,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"defaults ok", func(*AppConfig) {}, ""},
		{"bad uri", func(c *AppConfig) { c.MongoURI = "postgres://nope" }, "MongoDB URI"},
		{"empty database", func(c *AppConfig) { c.MongoDatabase = "" }, "mongo_database"},
		{"negative max size", func(c *AppConfig) { c.BuddyListMaxSize = -1 }, "buddy_list_max_size"},
		{"zero interval", func(c *AppConfig) { c.PresenceSweepInterval = 0 }, "positive"},
		{"offline before idle", func(c *AppConfig) { c.PresenceOfflineAfter = time.Minute }, "presence_offline_after"},
		{"negative timeout", func(c *AppConfig) { c.MongoTimeouts.Short = -time.Second }, "mongo timeouts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAppConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger())
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApplySeedFile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	path := filepath.Join(t.TempDir(), "people.yaml")
	doc := "users:\n  - {full_name: Alice Adams, email: alice@example.com, presence: active}\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	deps := DBDeps{BuddyHubMongoDatabase: db}
	if err := applySeedFile(ctx, deps, path, testLogger()); err != nil {
		t.Fatalf("applySeedFile failed: %v", err)
	}
	// Applying again is a no-op.
	if err := applySeedFile(ctx, deps, path, testLogger()); err != nil {
		t.Fatalf("second applySeedFile failed: %v", err)
	}

	n, err := userstore.New(db).Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}
}

func TestStartupShutdown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{BuddyHubMongoDatabase: db}
	if err := Startup(ctx, &config.CoreConfig{}, testAppConfig(), deps, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}
	if sweeper == nil {
		t.Fatal("expected presence sweeper to be running")
	}
	if err := Shutdown(context.Background(), &config.CoreConfig{}, testAppConfig(), deps, testLogger()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if sweeper != nil {
		t.Error("expected sweeper to be cleared after Shutdown")
	}
}

func TestBuildHandler_Routes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	deps := DBDeps{BuddyHubMongoClient: db.Client(), BuddyHubMongoDatabase: db}

	h, err := BuildHandler(&config.CoreConfig{Env: "dev"}, testAppConfig(), deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/api/buddies", http.StatusUnauthorized},
		{"POST", "/api/presence", http.StatusUnauthorized},
		{"GET", "/api/status", http.StatusUnauthorized},
		{"POST", "/api/muted-users/1", http.StatusUnauthorized},
		{"POST", "/logout", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
