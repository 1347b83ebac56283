// internal/app/features/buddylist/handler.go
package buddylist

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/system/auth"
	"github.com/dalemusser/buddyhub/internal/app/system/buddylist"
	"github.com/dalemusser/buddyhub/internal/app/system/httperr"
	"github.com/dalemusser/buddyhub/internal/app/system/normalize"
	"github.com/dalemusser/buddyhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the buddy list API.
type Handler struct {
	Loader   *Loader
	Selector *buddylist.Selector
	Log      *zap.Logger

	// Now is the clock; tests pin it.
	Now func() time.Time
}

// NewHandler creates a new buddy list handler.
func NewHandler(loader *Loader, selector *buddylist.Selector, logger *zap.Logger) *Handler {
	return &Handler{
		Loader:   loader,
		Selector: selector,
		Log:      logger,
		Now:      time.Now,
	}
}

type buddyRow struct {
	UserID   int64                 `json:"user_id"`
	FullName string                `json:"full_name"`
	IsBot    bool                  `json:"is_bot"`
	Status   buddylist.BuddyStatus `json:"status"`
	Title    buddylist.Title       `json:"title"`
}

type listResponse struct {
	Users []buddyRow `json:"users"`
}

type lastSeenResponse struct {
	UserID   int64  `json:"user_id"`
	LastSeen string `json:"last_seen"`
}

type huddleResponse struct {
	Fraction *float64 `json:"fraction"`
}

// snapshot loads the caller's view of the directory. It writes the error
// response itself and returns ok=false on failure.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) (buddylist.Snapshot, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httperr.Error(w, http.StatusUnauthorized, "unauthorized")
		return buddylist.Snapshot{}, false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "buddylist snapshot")
	defer cancel()

	snap, err := h.Loader.Load(ctx, user.ID, h.Now())
	if err != nil {
		httperr.Internal(w, h.Log, "failed to load buddy list snapshot", err)
		return buddylist.Snapshot{}, false
	}
	return snap, true
}

// ServeList handles GET /api/buddies?q=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	query := normalize.QueryParam(r.URL.Query().Get("q"))
	ids := h.Selector.RankAndFilter(snap, query)

	resp := listResponse{Users: make([]buddyRow, 0, len(ids))}
	for _, id := range ids {
		u, ok := snap.People.Get(id)
		if !ok {
			continue
		}
		resp.Users = append(resp.Users, buddyRow{
			UserID:   id,
			FullName: u.FullName,
			IsBot:    u.IsBot,
			Status:   h.Selector.BuddyStatus(snap, id),
			Title:    h.Selector.TitleData(snap, strconv.FormatInt(id, 10), false),
		})
	}
	httperr.JSON(w, http.StatusOK, resp)
}

// ServeTitle handles GET /api/buddies/title?key=&group=.
func (h *Handler) ServeTitle(w http.ResponseWriter, r *http.Request) {
	key := normalize.QueryParam(r.URL.Query().Get("key"))
	if key == "" {
		httperr.BadRequest(w, "key is required")
		return
	}
	isGroup, _ := strconv.ParseBool(r.URL.Query().Get("group"))

	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	httperr.JSON(w, http.StatusOK, h.Selector.TitleData(snap, key, isGroup))
}

// ServeLastSeen handles GET /api/buddies/{userID}/last-seen.
func (h *Handler) ServeLastSeen(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		httperr.BadRequest(w, "invalid user id")
		return
	}

	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	if _, found := snap.People.Get(id); !found {
		httperr.NotFound(w, "No such user")
		return
	}
	httperr.JSON(w, http.StatusOK, lastSeenResponse{
		UserID:   id,
		LastSeen: h.Selector.LastSeenStatus(snap, id),
	})
}

// ServeHuddle handles GET /api/buddies/huddle?ids=.
func (h *Handler) ServeHuddle(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	var resp huddleResponse
	if f, ok := h.Selector.HuddleFractionPresentKey(snap, r.URL.Query().Get("ids")); ok {
		resp.Fraction = &f
	}
	httperr.JSON(w, http.StatusOK, resp)
}
