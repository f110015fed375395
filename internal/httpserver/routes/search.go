package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
	"github.com/ecocycle-dz/ecocycle/internal/httpserver/handlers"
)

func init() { Register(registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	r.Get("/api/search", handlers.Search(d))
	r.Get("/api/catalog/search", handlers.CatalogSearch(d))
	r.Get("/api/stats", handlers.Stats(d))
	r.Get("/api/places", handlers.Places(d))
}
