// internal/app/features/login/handler.go
package login

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/store/presence"
	userstore "github.com/dalemusser/buddyhub/internal/app/store/users"
	"github.com/dalemusser/buddyhub/internal/app/system/auth"
	"github.com/dalemusser/buddyhub/internal/app/system/httperr"
	"github.com/dalemusser/buddyhub/internal/app/system/normalize"
	"github.com/dalemusser/buddyhub/internal/app/system/ratelimit"
	"github.com/dalemusser/buddyhub/internal/app/system/timeouts"
	"github.com/dalemusser/buddyhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler signs users in with trust or password auth.
type Handler struct {
	Users      *userstore.Store
	Presence   *presence.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Log        *zap.Logger
}

func NewHandler(users *userstore.Store, presenceStore *presence.Store, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		Presence:   presenceStore,
		SessionMgr: sessionMgr,
		Limiter:    limiter,
		Log:        logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// HandleLoginPost handles POST /login.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "invalid JSON body")
		return
	}
	email := normalize.Email(req.Email)
	if email == "" {
		httperr.BadRequest(w, "email is required")
		return
	}
	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, email); !ok {
			h.Log.Warn("login rate limited",
				zap.String("email", email),
				zap.String("ip", ratelimit.ClientIP(r)))
			httperr.Error(w, http.StatusTooManyRequests, reason)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	u, err := h.Users.CheckPassword(ctx, email, req.Password)
	if errors.Is(err, userstore.ErrBadPassword) || (err == nil && u.IsBot) {
		h.Log.Info("login rejected", zap.String("email", email))
		httperr.Error(w, http.StatusUnauthorized, userstore.ErrBadPassword.Error())
		return
	}
	if err != nil {
		httperr.Internal(w, h.Log, "login lookup failed", err)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{ID: u.ID, Name: u.FullName, Email: u.Email}); err != nil {
		httperr.Internal(w, h.Log, "save session failed", err)
		return
	}
	if err := h.Presence.Report(ctx, u.ID, models.PresenceActive, time.Now()); err != nil {
		// The session is already set; presence catches up on the next heartbeat.
		h.Log.Warn("failed to record login presence", zap.Error(err), zap.Int64("user_id", u.ID))
	}

	if h.Limiter != nil {
		h.Limiter.ResetEmail(email)
	}

	h.Log.Info("user logged in", zap.Int64("user_id", u.ID), zap.String("auth_method", u.AuthMethod))
	httperr.JSON(w, http.StatusOK, loginResponse{
		UserID:   u.ID,
		FullName: u.FullName,
		Email:    u.Email,
	})
}
