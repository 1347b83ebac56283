// internal/app/system/buddylist/status.go
package buddylist

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// BuddyStatus is the display state of one buddy list row.
type BuddyStatus string

const (
	StatusActive   BuddyStatus = "active"
	StatusAwayMe   BuddyStatus = "away_me"
	StatusAwayThem BuddyStatus = "away_them"
	StatusOffline  BuddyStatus = "offline"
)

// Fixed last-seen labels.
const (
	LabelActiveNow = "Active now"
	LabelUnknown   = "Unknown"
	LabelLongAgo   = "More than 2 weeks ago"
)

// LongAgo is the age past which LastSeenStatus stops formatting dates.
const LongAgo = 14 * 24 * time.Hour

// BuddyStatus collapses presence and the away flag into one display state.
// The away flag wins; otherwise idle and unknown presence read as offline.
func (s *Selector) BuddyStatus(snap Snapshot, userID int64) BuddyStatus {
	if snap.isAway(userID) {
		if userID == snap.MyID {
			return StatusAwayMe
		}
		return StatusAwayThem
	}
	if snap.isActive(userID) {
		return StatusActive
	}
	return StatusOffline
}

// LastSeenStatus describes when userID was last active.
func (s *Selector) LastSeenStatus(snap Snapshot, userID int64) string {
	p, ok := snap.presence(userID)
	if ok && p.IsActive() {
		return LabelActiveNow
	}
	if snap.LastActiveHidden {
		return LabelUnknown
	}
	now := snap.now()
	if !ok || p.LastActiveAt.IsZero() || now.Sub(p.LastActiveAt) > LongAgo {
		return LabelLongAgo
	}
	f := s.Formatter
	if f == nil {
		f = RelativeFormatter{}
	}
	return f.Format(p.LastActiveAt, now)
}

// Title holds the tooltip lines for a buddy list row or conversation.
type Title struct {
	FirstLine  string `json:"first_line"`
	SecondLine string `json:"second_line"`
	ThirdLine  string `json:"third_line"`
}

// TitleData builds tooltip lines for key. For a group, key is a
// comma-joined list of user IDs; otherwise it is a single user ID.
func (s *Selector) TitleData(snap Snapshot, key string, isGroup bool) Title {
	if isGroup {
		ids := s.parseIDs(key)
		names := make([]string, 0, len(ids))
		for _, id := range ids {
			u, ok := snap.user(id)
			if !ok {
				s.log().Warn("group title: unknown user_id", zap.Int64("user_id", id))
				continue
			}
			names = append(names, u.FullName)
		}
		return Title{FirstLine: strings.Join(names, ", ")}
	}

	id, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
	if err != nil {
		s.log().Warn("title: malformed user_id", zap.String("key", key))
		return Title{}
	}
	u, ok := snap.user(id)
	if !ok {
		s.log().Error("unknown user_id", zap.Int64("user_id", id))
		return Title{}
	}

	if u.IsBot {
		t := Title{FirstLine: u.FullName}
		if u.BotOwnerID != nil {
			if owner, ok := snap.user(*u.BotOwnerID); ok {
				t.SecondLine = "Owner: " + owner.FullName
			}
		}
		return t
	}

	t := Title{FirstLine: u.FullName}
	st, hasStatus := snap.status(id)
	if hasStatus {
		t.SecondLine = st.StatusText
	}
	// An away message already says whether the user is around.
	if hasStatus && st.Away && st.StatusText != "" {
		return t
	}
	t.ThirdLine = s.LastSeenStatus(snap, id)
	return t
}

// HuddleFractionPresent returns the share of ids with an active presence
// among ids that have any presence record. ok is false when nobody is
// present, which means no indicator should be drawn.
func (s *Selector) HuddleFractionPresent(snap Snapshot, ids []int64) (fraction float64, ok bool) {
	seen := make(map[int64]bool, len(ids))
	var observed, present int
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		p, has := snap.presence(id)
		if !has {
			continue
		}
		observed++
		if p.IsActive() {
			present++
		}
	}
	if present == 0 {
		return 0, false
	}
	if present == observed {
		return 1, true
	}
	return float64(present) / float64(observed), true
}

// HuddleFractionPresentKey is HuddleFractionPresent for a comma-joined key.
func (s *Selector) HuddleFractionPresentKey(snap Snapshot, key string) (float64, bool) {
	return s.HuddleFractionPresent(snap, s.parseIDs(key))
}

// parseIDs splits a comma-joined ID list, skipping malformed entries.
func (s *Selector) parseIDs(key string) []int64 {
	parts := strings.Split(key, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			s.log().Warn("skipping malformed user_id", zap.String("value", part))
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
