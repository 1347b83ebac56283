package status_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dalemusser/buddyhub/internal/app/features/status"
	"github.com/dalemusser/buddyhub/internal/app/store/userstatus"
	"github.com/dalemusser/buddyhub/internal/domain/models"
	"github.com/dalemusser/buddyhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *status.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return status.NewHandler(userstatus.New(db), zap.NewNop())
}

func decodeStatus(t *testing.T, rec *testutil.ResponseRecorder) models.UserStatus {
	t.Helper()
	var st models.UserStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return st
}

func TestServeGet_NoRecord(t *testing.T) {
	h := newTestHandler(t)
	user := testutil.TestUser{ID: 3}

	rec := testutil.NewRecorder()
	h.ServeGet(rec, testutil.NewAuthenticatedRequest("GET", "/api/status", user))

	rec.AssertStatus(t, http.StatusOK)
	st := decodeStatus(t, rec)
	if st.UserID != 3 || st.Away || st.StatusText != "" {
		t.Errorf("got %+v", st)
	}
}

func TestServeSet(t *testing.T) {
	h := newTestHandler(t)
	user := testutil.TestUser{ID: 3}

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantAway bool
		wantText string
	}{
		{"plain", `{"away":true,"status_text":"  out to lunch "}`, http.StatusOK, true, "out to lunch"},
		{"markup stripped", `{"away":false,"status_text":"<b>busy</b> <script>x()</script>"}`, http.StatusOK, false, "busy"},
		{"clear", `{"away":false,"status_text":""}`, http.StatusOK, false, ""},
		{"bad json", `{`, http.StatusBadRequest, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.ServeSet(rec, testutil.NewJSONRequest("POST", "/api/status", tt.body, user))

			rec.AssertStatus(t, tt.wantCode)
			if tt.wantCode != http.StatusOK {
				return
			}

			// Read back through GET.
			rec = testutil.NewRecorder()
			h.ServeGet(rec, testutil.NewAuthenticatedRequest("GET", "/api/status", user))
			st := decodeStatus(t, rec)
			if st.Away != tt.wantAway || st.StatusText != tt.wantText {
				t.Errorf("got away=%v text=%q, want away=%v text=%q", st.Away, st.StatusText, tt.wantAway, tt.wantText)
			}
		})
	}
}

func TestServeSet_Truncates(t *testing.T) {
	h := newTestHandler(t)
	user := testutil.TestUser{ID: 3}

	long := strings.Repeat("é", models.MaxStatusTextRunes+20)
	rec := testutil.NewRecorder()
	h.ServeSet(rec, testutil.NewJSONRequest("POST", "/api/status", `{"status_text":"`+long+`"}`, user))

	rec.AssertStatus(t, http.StatusOK)
	st := decodeStatus(t, rec)
	if n := utf8.RuneCountInString(st.StatusText); n != models.MaxStatusTextRunes {
		t.Errorf("status text length: got %d runes, want %d", n, models.MaxStatusTextRunes)
	}
}
