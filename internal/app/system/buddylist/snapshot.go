// internal/app/system/buddylist/snapshot.go
package buddylist

import (
	"sort"
	"time"

	"github.com/dalemusser/buddyhub/internal/domain/models"
)

// Directory is the read-only people directory for one call.
type Directory interface {
	Get(id int64) (models.User, bool)
	IDs() []int64
}

// PresenceMap holds presence records for users that have ever been observed.
type PresenceMap interface {
	Get(id int64) (models.Presence, bool)
	IDs() []int64
}

// StatusMap holds away flags and status messages.
type StatusMap interface {
	Get(id int64) (models.UserStatus, bool)
}

// Snapshot is everything the selector reads during one call. Callers build
// a fresh Snapshot per render; the selector never writes to it.
type Snapshot struct {
	People   Directory
	Presence PresenceMap
	Statuses StatusMap

	// Muted holds users the caller has muted; they are left out of the list.
	Muted map[int64]bool

	MyID int64
	Now  time.Time

	// LastActiveHidden is set when the deployment does not expose
	// last-active timestamps to other users.
	LastActiveHidden bool
}

func (s Snapshot) user(id int64) (models.User, bool) {
	if s.People == nil {
		return models.User{}, false
	}
	return s.People.Get(id)
}

func (s Snapshot) presence(id int64) (models.Presence, bool) {
	if s.Presence == nil {
		return models.Presence{}, false
	}
	return s.Presence.Get(id)
}

func (s Snapshot) status(id int64) (models.UserStatus, bool) {
	if s.Statuses == nil {
		return models.UserStatus{}, false
	}
	return s.Statuses.Get(id)
}

func (s Snapshot) isActive(id int64) bool {
	p, ok := s.presence(id)
	return ok && p.IsActive()
}

func (s Snapshot) isAway(id int64) bool {
	st, ok := s.status(id)
	return ok && st.Away
}

func (s Snapshot) now() time.Time {
	if s.Now.IsZero() {
		return time.Now()
	}
	return s.Now
}

/*─────────────────────────────────────────────────────────────────────────────*
| Map-backed collaborators                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

type directory struct {
	byID map[int64]models.User
	ids  []int64
}

// NewDirectory indexes users by ID. Later duplicates replace earlier ones.
func NewDirectory(users []models.User) Directory {
	d := &directory{byID: make(map[int64]models.User, len(users))}
	for _, u := range users {
		d.byID[u.ID] = u
	}
	d.ids = sortedKeys(d.byID)
	return d
}

func (d *directory) Get(id int64) (models.User, bool) {
	u, ok := d.byID[id]
	return u, ok
}

func (d *directory) IDs() []int64 { return d.ids }

type presenceMap struct {
	byID map[int64]models.Presence
	ids  []int64
}

// NewPresenceMap indexes presence records by user ID.
func NewPresenceMap(records []models.Presence) PresenceMap {
	m := &presenceMap{byID: make(map[int64]models.Presence, len(records))}
	for _, p := range records {
		m.byID[p.UserID] = p
	}
	m.ids = sortedKeys(m.byID)
	return m
}

func (m *presenceMap) Get(id int64) (models.Presence, bool) {
	p, ok := m.byID[id]
	return p, ok
}

func (m *presenceMap) IDs() []int64 { return m.ids }

type statusMap map[int64]models.UserStatus

// NewStatusMap indexes away/status records by user ID.
func NewStatusMap(records []models.UserStatus) StatusMap {
	m := make(statusMap, len(records))
	for _, st := range records {
		m[st.UserID] = st
	}
	return m
}

func (m statusMap) Get(id int64) (models.UserStatus, bool) {
	st, ok := m[id]
	return st, ok
}

func sortedKeys[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
