package login_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/features/login"
	"github.com/dalemusser/buddyhub/internal/app/store/presence"
	userstore "github.com/dalemusser/buddyhub/internal/app/store/users"
	"github.com/dalemusser/buddyhub/internal/app/system/auth"
	"github.com/dalemusser/buddyhub/internal/app/system/ratelimit"
	"github.com/dalemusser/buddyhub/internal/domain/models"
	"github.com/dalemusser/buddyhub/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleLoginPost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	pres := presence.New(db)
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := login.NewHandler(users, pres, sm, nil, zap.NewNop())

	pat, err := users.Create(ctx, models.User{FullName: "Pat", Email: "pat@example.com"}, "correct horse")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	tru, err := users.Create(ctx, models.User{FullName: "Tru", Email: "tru@example.com"}, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := users.Create(ctx, models.User{FullName: "Bot", Email: "bot@example.com", IsBot: true, BotOwnerID: &tru.ID}, ""); err != nil {
		t.Fatalf("Create bot failed: %v", err)
	}

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantID   int64
	}{
		{"password ok", `{"email":"PAT@example.com","password":"correct horse"}`, http.StatusOK, pat.ID},
		{"password wrong", `{"email":"pat@example.com","password":"nope"}`, http.StatusUnauthorized, 0},
		{"trust", `{"email":"tru@example.com"}`, http.StatusOK, tru.ID},
		{"bot", `{"email":"bot@example.com"}`, http.StatusUnauthorized, 0},
		{"unknown", `{"email":"ghost@example.com"}`, http.StatusUnauthorized, 0},
		{"missing email", `{}`, http.StatusBadRequest, 0},
		{"bad json", `{`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewJSONRequest("POST", "/login", tt.body, testutil.TestUser{})
			rec := testutil.NewRecorder()
			h.HandleLoginPost(rec, req)

			rec.AssertStatus(t, tt.wantCode)
			if tt.wantID == 0 {
				return
			}
			if len(rec.Result().Cookies()) == 0 {
				t.Error("expected a session cookie")
			}
			p, ok, err := pres.Get(ctx, tt.wantID)
			if err != nil || !ok || p.Status != models.PresenceActive {
				t.Errorf("presence after login: %+v ok=%v err=%v", p, ok, err)
			}
		})
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	limiter := ratelimit.NewLoginLimiterWithConfig(100, time.Hour, 2, time.Hour)
	h := login.NewHandler(userstore.New(db), presence.New(db), sm, limiter, zap.NewNop())

	body := `{"email":"ghost@example.com","password":"x"}`
	for i := 0; i < 2; i++ {
		rec := testutil.NewRecorder()
		h.HandleLoginPost(rec, testutil.NewJSONRequest("POST", "/login", body, testutil.TestUser{}))
		rec.AssertStatus(t, http.StatusUnauthorized)
	}

	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec, testutil.NewJSONRequest("POST", "/login", body, testutil.TestUser{}))
	rec.AssertStatus(t, http.StatusTooManyRequests)
}
