package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
)

// Favorites returns the favorite listing ids for the session.
func Favorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Market.Favorites())
	}
}

// AddFavorite marks a listing as favorite. Idempotent; the listing
// does not have to exist (favorites are weak references).
func AddFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		d.Market.AddToFavorites(id)
		writeJSON(w, http.StatusOK, d.Market.Favorites())
	}
}

// RemoveFavorite unmarks a listing. Idempotent.
func RemoveFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		d.Market.RemoveFromFavorites(id)
		writeJSON(w, http.StatusOK, d.Market.Favorites())
	}
}
