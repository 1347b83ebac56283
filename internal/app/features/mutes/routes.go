// internal/app/features/mutes/routes.go
package mutes

import (
	"github.com/dalemusser/buddyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for /api/muted-users.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Post("/{userID}", h.ServeMute)
	r.Delete("/{userID}", h.ServeUnmute)

	return r
}
