package handlers

import (
	"net/http"

	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
)

// History returns the recent search terms, most recent first.
func History(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Market.SearchHistory())
	}
}

// ClearHistory empties the search history.
func ClearHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Market.ClearSearchHistory()
		writeJSON(w, http.StatusOK, []string{})
	}
}
