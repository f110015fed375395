package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
	"github.com/ecocycle-dz/ecocycle/internal/httpserver/handlers"
)

func init() { Register(registerSession) }

// Session-scoped state: favorites and search history.
func registerSession(r chi.Router, d deps.Deps) {
	r.Route("/api/favorites", func(r chi.Router) {
		r.Get("/", handlers.Favorites(d))
		r.Put("/{id}", handlers.AddFavorite(d))
		r.Delete("/{id}", handlers.RemoveFavorite(d))
	})

	r.Route("/api/history", func(r chi.Router) {
		r.Get("/", handlers.History(d))
		r.Delete("/", handlers.ClearHistory(d))
	})
}
