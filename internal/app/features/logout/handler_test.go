package logout_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/features/logout"
	"github.com/dalemusser/buddyhub/internal/app/store/presence"
	"github.com/dalemusser/buddyhub/internal/app/system/auth"
	"github.com/dalemusser/buddyhub/internal/domain/models"
	"github.com/dalemusser/buddyhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*logout.Handler, *presence.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	pres := presence.New(db)
	return logout.NewHandler(pres, sm, zap.NewNop()), pres
}

func TestServeLogout_MarksOffline(t *testing.T) {
	h, pres := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := pres.Report(ctx, 4, models.PresenceActive, time.Now()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	rec := testutil.NewRecorder()
	h.ServeLogout(rec, testutil.NewAuthenticatedRequest("POST", "/logout", testutil.TestUser{ID: 4}))

	rec.AssertStatus(t, http.StatusOK)
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].MaxAge >= 0 {
		t.Errorf("expected an expiring cookie, got %+v", cookies)
	}

	p, ok, err := pres.Get(ctx, 4)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if p.Status != models.PresenceOffline {
		t.Errorf("Status: got %q, want offline", p.Status)
	}
}

func TestServeLogout_Anonymous(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeLogout(rec, testutil.NewRequest("POST", "/logout"))

	rec.AssertStatus(t, http.StatusOK)
}
