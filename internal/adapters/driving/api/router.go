package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the HTTP routing table.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Knowledge operations require a caller identity.
		r.Group(func(r chi.Router) {
			r.Use(UserMiddleware)

			r.Post("/documents", h.UploadDocument)
			r.Get("/documents", h.ListDocuments)
			r.Delete("/documents/{documentID}", h.DeleteDocument)

			r.Post("/search", h.Search)
		})
	})

	return r
}
