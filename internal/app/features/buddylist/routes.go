// internal/app/features/buddylist/routes.go
package buddylist

import (
	"github.com/dalemusser/buddyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the buddy list API.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/title", h.ServeTitle)
	r.Get("/huddle", h.ServeHuddle)
	r.Get("/{userID}/last-seen", h.ServeLastSeen)

	return r
}
