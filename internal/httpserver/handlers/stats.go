package handlers

import (
	"net/http"

	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
)

// Stats returns marketplace aggregates computed over the durable
// store. A zero struct means the aggregation could not complete.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := d.Syncer.Statistics(r.Context())
		writeJSON(w, http.StatusOK, stats)
	}
}
