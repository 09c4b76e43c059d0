package product

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the JSON API routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", h.Upload)
		r.Post("/update-content", h.UpdateContent)

		r.Route("/search", func(r chi.Router) {
			r.Get("/", h.Search)
			r.Get("/export", h.ExportSearch)
		})
	})
}
