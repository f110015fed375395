package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ecocycle-dz/ecocycle/internal/domain"
	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
)

// Search runs the fast in-memory text search and records the term in
// the search history. A blank query returns all active listings.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		d.Logger.Debug("search request", logger.String("query", query))

		d.Market.AddSearchTerm(query)
		results := d.Market.SearchListings(query)

		writeJSON(w, http.StatusOK, results)
	}
}

// CatalogSearch runs a structured query against the indexed durable
// store: free text plus category, location and price/weight bounds.
func CatalogSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		q := domain.SearchQuery{
			Text:     strings.TrimSpace(params.Get("q")),
			Category: params.Get("category"),
			Location: params.Get("location"),
		}

		var bad bool
		q.PriceMin, bad = parseBound(params.Get("priceMin"), bad)
		q.PriceMax, bad = parseBound(params.Get("priceMax"), bad)
		q.WeightMin, bad = parseBound(params.Get("weightMin"), bad)
		q.WeightMax, bad = parseBound(params.Get("weightMax"), bad)
		if bad {
			writeError(w, http.StatusBadRequest, "bounds must be numeric")
			return
		}

		results := d.Syncer.Search(r.Context(), q)
		writeJSON(w, http.StatusOK, results)
	}
}

func parseBound(raw string, bad bool) (*float64, bool) {
	if raw == "" {
		return nil, bad
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, true
	}
	return &v, bad
}
