package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
)

const defaultPlacesLimit = 8

// Places returns ranked place-name suggestions for an autocomplete
// query.
func Places(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		limit := defaultPlacesLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		writeJSON(w, http.StatusOK, d.Gazetteer.Rank(query, limit))
	}
}
