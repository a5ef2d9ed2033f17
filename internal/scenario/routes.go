package scenario

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the scenario endpoints under the /scenarios prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/scenarios", func(r chi.Router) {
		r.Post("/run", h.Run)
	})
}
