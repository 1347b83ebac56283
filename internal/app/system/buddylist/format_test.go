package buddylist_test

import (
	"testing"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/system/buddylist"
	"github.com/stretchr/testify/assert"
)

func TestRelativeFormatter(t *testing.T) {
	f := buddylist.RelativeFormatter{}
	now := time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds", now.Add(-20 * time.Second), "Just now"},
		{"future clock skew", now.Add(time.Minute), "Just now"},
		{"one minute", now.Add(-time.Minute), "1 minute ago"},
		{"minutes", now.Add(-42 * time.Minute), "42 minutes ago"},
		{"hours same day", now.Add(-3 * time.Hour), "3 hours ago"},
		{"yesterday", time.Date(2024, 3, 13, 23, 0, 0, 0, time.UTC), "Yesterday"},
		{"days", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), "4 days ago"},
		{"same year", time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC), "Feb 1"},
		{"previous year", time.Date(2023, 12, 30, 9, 0, 0, 0, time.UTC), "Dec 30, 2023"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.t, now))
		})
	}
}

func TestRelativeFormatter_Location(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*60*60)
	f := buddylist.RelativeFormatter{Location: loc}

	// 06:00 UTC is 22:00 the previous day at UTC-8.
	now := time.Date(2024, 3, 14, 6, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 3, 14, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, "5 hours ago", f.Format(earlier, now))
	assert.Equal(t, "Yesterday", buddylist.RelativeFormatter{}.Format(time.Date(2024, 3, 13, 20, 0, 0, 0, time.UTC), now))
}
