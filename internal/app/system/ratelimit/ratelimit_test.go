package ratelimit_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/system/ratelimit"
)

func TestLimiter_Allow(t *testing.T) {
	l := ratelimit.New(2, time.Hour)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two hits should be allowed")
	}
	if l.Allow("a") {
		t.Error("third hit should be limited")
	}
	if !l.Allow("b") {
		t.Error("other keys have their own window")
	}

	l.Reset("a")
	if !l.Allow("a") {
		t.Error("Reset should clear the window")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l := ratelimit.New(1, 20*time.Millisecond)

	if !l.Allow("a") {
		t.Fatal("first hit should be allowed")
	}
	if l.Allow("a") {
		t.Fatal("second hit should be limited")
	}
	time.Sleep(40 * time.Millisecond)
	if !l.Allow("a") {
		t.Error("hit after the window should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{"forwarded", "203.0.113.9, 10.0.0.1", "", "10.0.0.2:1234", "203.0.113.9"},
		{"real ip", "", "198.51.100.4", "10.0.0.2:1234", "198.51.100.4"},
		{"remote with port", "", "", "192.0.2.1:5555", "192.0.2.1"},
		{"remote without port", "", "", "192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/login", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ratelimit.ClientIP(r); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginLimiter(t *testing.T) {
	ll := ratelimit.NewLoginLimiterWithConfig(100, time.Hour, 2, time.Hour)
	r := httptest.NewRequest("POST", "/login", nil)

	for i := 0; i < 2; i++ {
		if ok, _ := ll.Check(r, "pat@example.com"); !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	ok, reason := ll.Check(r, "pat@example.com")
	if ok || reason == "" {
		t.Errorf("third attempt should be limited with a reason, got ok=%v reason=%q", ok, reason)
	}

	ll.ResetEmail("pat@example.com")
	if ok, _ := ll.Check(r, "pat@example.com"); !ok {
		t.Error("ResetEmail should clear the per-email count")
	}
}
