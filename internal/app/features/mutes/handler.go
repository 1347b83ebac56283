// internal/app/features/mutes/handler.go
package mutes

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	mutestore "github.com/dalemusser/buddyhub/internal/app/store/mutes"
	userstore "github.com/dalemusser/buddyhub/internal/app/store/users"
	"github.com/dalemusser/buddyhub/internal/app/system/auth"
	"github.com/dalemusser/buddyhub/internal/app/system/httperr"
	"github.com/dalemusser/buddyhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler lets a user hide other users from their buddy list.
type Handler struct {
	Users *userstore.Store
	Mutes *mutestore.Store
	Log   *zap.Logger
}

// NewHandler creates a new mutes handler.
func NewHandler(users *userstore.Store, mutes *mutestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Mutes: mutes, Log: logger}
}

type muteResponse struct {
	Result string `json:"result"`
}

// ServeMute handles POST /api/muted-users/{userID}.
func (h *Handler) ServeMute(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "mute", h.mute)
}

// ServeUnmute handles DELETE /api/muted-users/{userID}.
func (h *Handler) ServeUnmute(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "unmute", h.unmute)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, me, target int64) error) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httperr.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	target, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		httperr.BadRequest(w, "invalid user id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, op)
	defer cancel()

	switch err := fn(ctx, user.ID, target); {
	case err == nil:
		h.Log.Info("user "+op+"d",
			zap.Int64("user_id", user.ID),
			zap.Int64("muted_user_id", target))
		httperr.JSON(w, http.StatusOK, muteResponse{Result: "success"})
	case errors.Is(err, userstore.ErrNotFound):
		httperr.NotFound(w, "No such user")
	case errors.Is(err, mutestore.ErrCannotMuteSelf),
		errors.Is(err, mutestore.ErrCannotMuteBot),
		errors.Is(err, mutestore.ErrAlreadyMuted),
		errors.Is(err, mutestore.ErrNotMuted):
		httperr.BadRequest(w, err.Error())
	default:
		httperr.Internal(w, h.Log, "failed to "+op+" user", err)
	}
}

func (h *Handler) mute(ctx context.Context, me, target int64) error {
	if me == target {
		return mutestore.ErrCannotMuteSelf
	}
	u, err := h.Users.GetByID(ctx, target)
	if err != nil {
		return err
	}
	if u.IsBot {
		return mutestore.ErrCannotMuteBot
	}
	_, err = h.Mutes.Mute(ctx, me, target, time.Now())
	return err
}

// unmute treats bots as unknown users; they can never have been muted.
func (h *Handler) unmute(ctx context.Context, me, target int64) error {
	u, err := h.Users.GetByID(ctx, target)
	if err != nil {
		return err
	}
	if u.IsBot {
		return userstore.ErrNotFound
	}
	return h.Mutes.Unmute(ctx, me, target)
}
