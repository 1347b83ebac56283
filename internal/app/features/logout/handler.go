// internal/app/features/logout/handler.go
package logout

import (
	"net/http"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/store/presence"
	"github.com/dalemusser/buddyhub/internal/app/system/auth"
	"github.com/dalemusser/buddyhub/internal/app/system/httperr"
	"github.com/dalemusser/buddyhub/internal/app/system/timeouts"
	"github.com/dalemusser/buddyhub/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	Presence   *presence.Store
	SessionMgr *auth.SessionManager
}

func NewHandler(presenceStore *presence.Store, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		Presence:   presenceStore,
		SessionMgr: sessionMgr,
	}
}

type logoutResponse struct {
	Result string `json:"result"`
}

// ServeLogout handles POST /logout. The cookie is cleared even when no
// user is signed in.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if user, ok := auth.CurrentUser(r); ok {
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "logout presence")
		defer cancel()
		if err := h.Presence.Report(ctx, user.ID, models.PresenceOffline, time.Now()); err != nil {
			h.Log.Warn("failed to mark presence offline", zap.Error(err), zap.Int64("user_id", user.ID))
		}
	}

	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}
	httperr.JSON(w, http.StatusOK, logoutResponse{Result: "success"})
}
