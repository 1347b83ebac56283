// internal/app/system/buddylist/selector.go
//
// Package buddylist decides which users appear in the buddy list, in what
// order, and what each entry says about the user's presence.
//
// Every operation is a pure function of a Snapshot plus the Selector's
// MaxSize. A Selector is safe for concurrent use.
package buddylist

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxSize is the list size above which an unfiltered list shrinks.
const DefaultMaxSize = 400

// Priority levels, lower sorts first. LevelSelf is never returned by Rank;
// the caller's own row is rendered separately.
const (
	LevelSelf       = 0
	LevelActive     = 1
	LevelActiveAway = 2
	LevelOther      = 3
)

// Selector ranks, filters and caps buddy lists.
type Selector struct {
	// MaxSize caps unfiltered lists. Non-positive disables shrinking.
	MaxSize   int
	Formatter DateFormatter
	Log       *zap.Logger
}

// New builds a Selector with the default relative date formatter in UTC.
func New(maxSize int, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		MaxSize:   maxSize,
		Formatter: RelativeFormatter{},
		Log:       logger,
	}
}

func (s *Selector) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Level returns the priority tier of userID. Idle and offline users share
// LevelOther with users that were never observed.
func Level(snap Snapshot, userID int64) int {
	if userID == snap.MyID {
		return LevelSelf
	}
	if !snap.isActive(userID) {
		return LevelOther
	}
	if snap.isAway(userID) {
		return LevelActiveAway
	}
	return LevelActive
}

// RankAndFilter returns the IDs to show for query: Rank followed by Cap.
// Presence records for users missing from the directory are reported once
// per call, whatever the query.
func (s *Selector) RankAndFilter(snap Snapshot, query string) []int64 {
	s.reportUnknownPresence(snap)
	return s.Cap(snap, s.Rank(snap, query), query)
}

type rankRow struct {
	id    int64
	level int
	name  string
}

// Rank returns every directory user other than the caller and the users
// the caller muted that matches query, ordered by level, then folded full
// name, then ID.
func (s *Selector) Rank(snap Snapshot, query string) []int64 {
	if snap.People == nil {
		return []int64{}
	}
	q := NormalizeQuery(query)

	ids := snap.People.IDs()
	rows := make([]rankRow, 0, len(ids))
	for _, id := range ids {
		if id == snap.MyID || snap.Muted[id] {
			continue
		}
		u, ok := snap.People.Get(id)
		if !ok || !matchesFolded(u, q) {
			continue
		}
		rows = append(rows, rankRow{id: id, level: Level(snap, id), name: foldedName(u)})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.level != b.level {
			return a.level < b.level
		}
		if c := strings.Compare(a.name, b.name); c != 0 {
			return c < 0
		}
		return a.id < b.id
	})

	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.id
	}
	return out
}

// Cap applies the size policy to an already ranked list.
//
// A filtered list is returned whole. An unfiltered list keeps only users
// that have a presence record, and if more than MaxSize remain it returns
// the first MaxSize of them. When nobody has been observed the ranked list
// is cut at MaxSize instead.
func (s *Selector) Cap(snap Snapshot, ranked []int64, query string) []int64 {
	if NormalizeQuery(query) != "" || s.MaxSize <= 0 {
		return ranked
	}

	observed := observedIDs(snap)
	seen := make([]int64, 0, len(observed))
	for _, id := range ranked {
		if observed[id] {
			seen = append(seen, id)
		}
	}

	switch {
	case len(seen) == 0:
		if len(ranked) > s.MaxSize {
			return ranked[:s.MaxSize]
		}
		return ranked
	case len(seen) <= s.MaxSize:
		return seen
	}
	return seen[:s.MaxSize]
}

// observedIDs collects presence IDs that resolve to a directory user.
func observedIDs(snap Snapshot) map[int64]bool {
	if snap.Presence == nil {
		return map[int64]bool{}
	}
	ids := snap.Presence.IDs()
	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if _, ok := snap.user(id); ok {
			out[id] = true
		}
	}
	return out
}

// reportUnknownPresence logs each presence record whose user is not in the
// directory. Such records are a data fault and never reach the list.
func (s *Selector) reportUnknownPresence(snap Snapshot) {
	if snap.Presence == nil {
		return
	}
	for _, id := range snap.Presence.IDs() {
		if _, ok := snap.user(id); ok {
			continue
		}
		s.log().Error("unknown user_id", zap.Int64("user_id", id))
		s.log().Warn("dropping presence record from buddy list", zap.Int64("user_id", id))
	}
}
