package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecocycle-dz/ecocycle/internal/domain"
	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
)

const maxListingBody = 1 << 20 // 1 MiB

// ListListings returns the whole collection in insertion order, or
// only the active listings when ?status=active.
func ListListings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var listings []*domain.Listing
		if r.URL.Query().Get("status") == string(domain.StatusActive) {
			listings = d.Market.ActiveListings()
		} else {
			listings = d.Market.Listings()
		}

		if category := r.URL.Query().Get("category"); category != "" {
			listings = d.Market.ListingsByCategory(category)
		}

		writeJSON(w, http.StatusOK, listings)
	}
}

// CreateListing creates a listing in both stores and reports the
// per-store outcome. A failed durable write still returns 201: the
// in-memory write has already taken effect and is not rolled back.
func CreateListing(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft domain.Draft
		r.Body = http.MaxBytesReader(w, r.Body, maxListingBody)
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid listing payload")
			return
		}

		report := d.Syncer.SaveListing(r.Context(), draft)

		d.Logger.Info("listing created",
			logger.String("listing_id", report.Listing.ID),
			logger.Bool("durable", report.Secondary))

		writeJSON(w, http.StatusCreated, report)
	}
}

// GetListing returns one listing by id.
func GetListing(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		listing := d.Market.Get(id)
		if listing == nil {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}

		writeJSON(w, http.StatusOK, listing)
	}
}

// UpdateListing merges a partial update into the listing.
func UpdateListing(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var patch domain.Patch
		r.Body = http.MaxBytesReader(w, r.Body, maxListingBody)
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid patch payload")
			return
		}

		updated := d.Market.UpdateListing(id, patch)
		if updated == nil {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}

		// Mirror the update durably; failure is reported by the error
		// slot, not by this response.
		d.Catalog.SaveListing(r.Context(), updated)

		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteListing removes the listing from both stores.
func DeleteListing(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		report := d.Syncer.DeleteListing(r.Context(), id)
		writeJSON(w, http.StatusOK, report)
	}
}

// IncrementViews bumps the view counter.
func IncrementViews(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		listing := d.Market.IncrementViews(id)
		if listing == nil {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}
		d.Catalog.SaveListing(r.Context(), listing)

		writeJSON(w, http.StatusOK, listing)
	}
}

// ToggleLike adjusts the listing's like counter. The direction comes
// from favorite membership: favorited listings get a decrement, the
// rest an increment. Membership itself is never touched here.
func ToggleLike(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		listing := d.Market.ToggleLike(id)
		if listing == nil {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}
		d.Catalog.SaveListing(r.Context(), listing)

		writeJSON(w, http.StatusOK, listing)
	}
}

// MarkAsSold transitions the listing to sold.
func MarkAsSold(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		listing := d.Market.MarkAsSold(id)
		if listing == nil {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}
		d.Catalog.SaveListing(r.Context(), listing)

		d.Logger.Info("listing sold", logger.String("listing_id", id))
		writeJSON(w, http.StatusOK, listing)
	}
}
