// internal/app/features/heartbeat/handler.go
package heartbeat

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/store/presence"
	"github.com/dalemusser/buddyhub/internal/app/system/auth"
	"github.com/dalemusser/buddyhub/internal/app/system/httperr"
	"github.com/dalemusser/buddyhub/internal/app/system/normalize"
	"github.com/dalemusser/buddyhub/internal/app/system/timeouts"
	"github.com/dalemusser/buddyhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler handles presence reports from signed-in clients.
type Handler struct {
	Presence *presence.Store
	Log      *zap.Logger
}

// NewHandler creates a new heartbeat handler.
func NewHandler(presenceStore *presence.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Presence: presenceStore,
		Log:      logger,
	}
}

// heartbeatRequest is the JSON body for the heartbeat endpoint.
type heartbeatRequest struct {
	Status string `json:"status"`
}

type heartbeatResponse struct {
	Status string `json:"status"`
}

// ServeHeartbeat handles POST /api/presence.
// An empty or missing body counts as an active report. Clients report
// offline through /logout, so only active and idle are accepted here.
func (h *Handler) ServeHeartbeat(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httperr.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req heartbeatRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperr.BadRequest(w, "invalid JSON body")
			return
		}
	}

	status := normalize.PresenceStatus(req.Status)
	if status != models.PresenceActive && status != models.PresenceIdle {
		httperr.BadRequest(w, "status must be active or idle")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "presence report")
	defer cancel()

	if err := h.Presence.Report(ctx, user.ID, status, time.Now()); err != nil {
		httperr.Internal(w, h.Log, "failed to record presence", err)
		return
	}

	httperr.JSON(w, http.StatusOK, heartbeatResponse{Status: status})
}
