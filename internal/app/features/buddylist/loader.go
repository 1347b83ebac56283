package buddylist

import (
	"context"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/store/mutes"
	"github.com/dalemusser/buddyhub/internal/app/store/presence"
	userstore "github.com/dalemusser/buddyhub/internal/app/store/users"
	"github.com/dalemusser/buddyhub/internal/app/store/userstatus"
	"github.com/dalemusser/buddyhub/internal/app/system/buddylist"
)

// Loader reads the stores the selector needs and freezes them into a
// Snapshot for one request.
type Loader struct {
	Users    *userstore.Store
	Presence *presence.Store
	Statuses *userstatus.Store
	Mutes    *mutes.Store

	HideLastActive bool
}

// NewLoader builds a Loader over the given stores.
func NewLoader(users *userstore.Store, pres *presence.Store, statuses *userstatus.Store, mutesStore *mutes.Store, hideLastActive bool) *Loader {
	return &Loader{
		Users:          users,
		Presence:       pres,
		Statuses:       statuses,
		Mutes:          mutesStore,
		HideLastActive: hideLastActive,
	}
}

// Load builds the snapshot seen by myID at now.
func (l *Loader) Load(ctx context.Context, myID int64, now time.Time) (buddylist.Snapshot, error) {
	people, err := l.Users.List(ctx)
	if err != nil {
		return buddylist.Snapshot{}, err
	}
	records, err := l.Presence.All(ctx)
	if err != nil {
		return buddylist.Snapshot{}, err
	}
	statuses, err := l.Statuses.All(ctx)
	if err != nil {
		return buddylist.Snapshot{}, err
	}
	muted, err := l.Mutes.MutedIDs(ctx, myID)
	if err != nil {
		return buddylist.Snapshot{}, err
	}

	return buddylist.Snapshot{
		People:           buddylist.NewDirectory(people),
		Presence:         buddylist.NewPresenceMap(records),
		Statuses:         buddylist.NewStatusMap(statuses),
		Muted:            muted,
		MyID:             myID,
		Now:              now,
		LastActiveHidden: l.HideLastActive,
	}, nil
}
