// internal/app/features/status/handler.go
package status

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/buddyhub/internal/app/store/userstatus"
	"github.com/dalemusser/buddyhub/internal/app/system/auth"
	"github.com/dalemusser/buddyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/buddyhub/internal/app/system/httperr"
	"github.com/dalemusser/buddyhub/internal/app/system/timeouts"
	"github.com/dalemusser/buddyhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the caller's away flag and status text.
type Handler struct {
	Statuses *userstatus.Store
	Log      *zap.Logger
}

// NewHandler creates a new status handler.
func NewHandler(statuses *userstatus.Store, logger *zap.Logger) *Handler {
	return &Handler{Statuses: statuses, Log: logger}
}

type statusRequest struct {
	Away       bool   `json:"away"`
	StatusText string `json:"status_text"`
}

// ServeGet handles GET /api/status.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httperr.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "status get")
	defer cancel()

	st, err := h.Statuses.Get(ctx, user.ID)
	if err != nil {
		httperr.Internal(w, h.Log, "failed to load status", err)
		return
	}
	httperr.JSON(w, http.StatusOK, st)
}

// ServeSet handles POST /api/status. Markup is stripped from the text and
// it is cut to models.MaxStatusTextRunes.
func (h *Handler) ServeSet(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httperr.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "invalid JSON body")
		return
	}
	text := htmlsanitize.StatusText(req.StatusText, models.MaxStatusTextRunes)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "status set")
	defer cancel()

	st, err := h.Statuses.Set(ctx, user.ID, req.Away, text)
	if err != nil {
		httperr.Internal(w, h.Log, "failed to save status", err)
		return
	}
	h.Log.Debug("status updated",
		zap.Int64("user_id", user.ID),
		zap.Bool("away", st.Away))
	httperr.JSON(w, http.StatusOK, st)
}
