// internal/app/features/status/routes.go
package status

import (
	"github.com/dalemusser/buddyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the caller's away status.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeGet)
	r.Post("/", h.ServeSet)

	return r
}
