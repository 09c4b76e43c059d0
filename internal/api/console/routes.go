package console

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the browser console pages
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Index)
	r.Post("/upload", h.Upload)
	r.Post("/update-content", h.UpdateContent)
}
