// internal/app/system/buddylist/format.go
package buddylist

import (
	"fmt"
	"math"
	"time"
)

// DateFormatter renders a past timestamp for a last-seen label.
type DateFormatter interface {
	Format(t, now time.Time) string
}

// RelativeFormatter renders timestamps relative to now, counting calendar
// days in Location (UTC when nil).
type RelativeFormatter struct {
	Location *time.Location
}

// Format returns "Just now", "N minutes ago", "N hours ago", "Yesterday",
// "N days ago", or a "Jan 2" style date for anything a week or older.
func (f RelativeFormatter) Format(t, now time.Time) string {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	t, now = t.In(loc), now.In(loc)

	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	}

	days := calendarDays(t, now, loc)
	switch {
	case days == 0:
		return plural(int(d/time.Hour), "hour") + " ago"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return plural(days, "day") + " ago"
	case t.Year() == now.Year():
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 2, 2006")
	}
}

func calendarDays(from, to time.Time, loc *time.Location) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, loc)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, loc)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
