package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
	"github.com/ecocycle-dz/ecocycle/internal/httpserver/handlers"
)

func init() { Register(registerListings) }

func registerListings(r chi.Router, d deps.Deps) {
	r.Route("/api/listings", func(r chi.Router) {
		r.Get("/", handlers.ListListings(d))
		r.Post("/", handlers.CreateListing(d))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetListing(d))
			r.Patch("/", handlers.UpdateListing(d))
			r.Delete("/", handlers.DeleteListing(d))
			r.Post("/views", handlers.IncrementViews(d))
			r.Post("/like", handlers.ToggleLike(d))
			r.Post("/sold", handlers.MarkAsSold(d))
		})
	})
}
