package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ecocycle-dz/ecocycle/internal/domain"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
	"github.com/ecocycle-dz/ecocycle/internal/utils"
)

// Store is the indexed durable mirror of the listing collection,
// backed by embedded SQLite. It is independent of the primary
// store's snapshot persistence.
//
// Every public operation catches engine failures, logs them and
// returns a neutral value (false, empty slice, zero struct) instead
// of an error. Callers must treat empty/falsy returns as "could not
// complete", not as "no data".
type Store struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

// NewStore creates a store on an opened database. The schema must
// already be applied (see EnsureSchema).
func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log,
		now:    time.Now,
	}
}

const listingColumns = `id, title, description, waste_type, category, weight, price,
	location, seller, phone, quality, organic, image, date,
	created_at, updated_at, status, views, likes`

// SaveListing upserts a listing by ID. Returns false when the write
// could not complete.
func (s *Store) SaveListing(ctx context.Context, l *domain.Listing) bool {
	if l == nil || l.ID == "" {
		s.logger.Warn("refusing to save listing without id")
		return false
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO listings (`+listingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			waste_type = excluded.waste_type,
			category = excluded.category,
			weight = excluded.weight,
			price = excluded.price,
			location = excluded.location,
			seller = excluded.seller,
			phone = excluded.phone,
			quality = excluded.quality,
			organic = excluded.organic,
			image = excluded.image,
			date = excluded.date,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			status = excluded.status,
			views = excluded.views,
			likes = excluded.likes`,
		l.ID, l.Title, l.Description, l.WasteType, l.Category, l.Weight, l.Price,
		l.Location, l.Seller, l.Phone, l.Quality, boolToInt(l.Organic), l.Image, l.Date,
		formatTime(l.CreatedAt), formatTime(l.UpdatedAt), string(l.Status), l.Views, l.Likes,
	)
	if err != nil {
		s.logger.Error("failed to save listing",
			logger.String("listing_id", l.ID),
			logger.Error(err))
		return false
	}

	return true
}

// GetAllListings returns every stored listing. No ordering is
// guaranteed. Returns an empty slice on failure.
func (s *Store) GetAllListings(ctx context.Context) []*domain.Listing {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+listingColumns+` FROM listings`)
	if err != nil {
		s.logger.Error("failed to query listings", logger.Error(err))
		return []*domain.Listing{}
	}
	defer utils.Close(rows)

	return s.collectListings(rows)
}

// GetListingsByCategory returns listings whose category matches
// exactly. Unlike the primary store, there is no wasteType fallback:
// this is an index lookup, and the asymmetry is deliberate and
// covered by tests.
func (s *Store) GetListingsByCategory(ctx context.Context, category string) []*domain.Listing {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE category = ?`, category)
	if err != nil {
		s.logger.Error("failed to query listings by category",
			logger.String("category", category),
			logger.Error(err))
		return []*domain.Listing{}
	}
	defer utils.Close(rows)

	return s.collectListings(rows)
}

// DeleteListing removes a listing by ID. No-op when absent; false
// only on engine failure.
func (s *Store) DeleteListing(ctx context.Context, id string) bool {
	_, err := s.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		s.logger.Error("failed to delete listing",
			logger.String("listing_id", id),
			logger.Error(err))
		return false
	}
	return true
}

// SearchListings applies a structured filter over active listings:
// free-text substring across title/description/wasteType/category/
// location, category filter with wasteType fallback (disabled by
// "all"), location substring, and inclusive price/weight bounds.
func (s *Store) SearchListings(ctx context.Context, q domain.SearchQuery) []*domain.Listing {
	where := []string{`status = ?`}
	args := []any{string(domain.StatusActive)}

	if text := strings.TrimSpace(q.Text); text != "" {
		pattern := "%" + strings.ToLower(text) + "%"
		where = append(where,
			`(lower(title) LIKE ? OR lower(description) LIKE ? OR lower(waste_type) LIKE ?
			  OR lower(category) LIKE ? OR lower(location) LIKE ?)`)
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}

	if q.Category != "" && q.Category != "all" {
		where = append(where, `(category = ? OR waste_type = ?)`)
		args = append(args, q.Category, q.Category)
	}

	if q.Location != "" {
		where = append(where, `lower(location) LIKE ?`)
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}

	if q.PriceMin != nil {
		where = append(where, `price >= ?`)
		args = append(args, *q.PriceMin)
	}
	if q.PriceMax != nil {
		where = append(where, `price <= ?`)
		args = append(args, *q.PriceMax)
	}
	if q.WeightMin != nil {
		where = append(where, `weight >= ?`)
		args = append(args, *q.WeightMin)
	}
	if q.WeightMax != nil {
		where = append(where, `weight <= ?`)
		args = append(args, *q.WeightMax)
	}

	query := `SELECT ` + listingColumns + ` FROM listings WHERE ` + strings.Join(where, " AND ")

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to search listings", logger.Error(err))
		return []*domain.Listing{}
	}
	defer utils.Close(rows)

	return s.collectListings(rows)
}

// GetStatistics computes the aggregate over all stored listings.
// Returns the zero value on failure.
func (s *Store) GetStatistics(ctx context.Context) domain.Statistics {
	stats := domain.Statistics{
		CategoryBreakdown: map[string]int{},
		LocationBreakdown: map[string]int{},
	}

	weekAgo := formatTime(s.now().Add(-7 * 24 * time.Hour))

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE created_at > ?),
			COALESCE(SUM(views), 0),
			COALESCE(SUM(likes), 0)
		 FROM listings`,
		string(domain.StatusActive), string(domain.StatusSold), weekAgo,
	).Scan(&stats.TotalListings, &stats.ActiveListings, &stats.SoldListings,
		&stats.ThisWeekListings, &stats.TotalViews, &stats.TotalLikes)
	if err != nil {
		s.logger.Error("failed to compute statistics", logger.Error(err))
		return domain.Statistics{}
	}

	stats.CategoryBreakdown = s.breakdown(ctx, "category", domain.FallbackCategory)
	stats.LocationBreakdown = s.breakdown(ctx, "location", domain.FallbackLocation)

	return stats
}

// breakdown groups listing counts by a column, substituting fallback
// for empty values.
func (s *Store) breakdown(ctx context.Context, column, fallback string) map[string]int {
	out := map[string]int{}

	// column is one of our own identifiers, never user input.
	rows, err := s.db.QueryContext(ctx,
		`SELECT CASE WHEN `+column+` = '' THEN ? ELSE `+column+` END AS bucket, COUNT(*)
		 FROM listings GROUP BY bucket`, fallback)
	if err != nil {
		s.logger.Error("failed to compute breakdown",
			logger.String("column", column),
			logger.Error(err))
		return out
	}
	defer utils.Close(rows)

	for rows.Next() {
		var bucket string
		var count int
		if err := rows.Scan(&bucket, &count); err != nil {
			s.logger.Error("failed to scan breakdown row", logger.Error(err))
			return map[string]int{}
		}
		out[bucket] = count
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("failed to iterate breakdown rows", logger.Error(err))
	}

	return out
}

// collectListings scans all rows, skipping none: a scan failure
// degrades the whole result to empty, per the neutral-value policy.
func (s *Store) collectListings(rows *sql.Rows) []*domain.Listing {
	listings := []*domain.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			s.logger.Error("failed to scan listing row", logger.Error(err))
			return []*domain.Listing{}
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("failed to iterate listing rows", logger.Error(err))
		return []*domain.Listing{}
	}
	return listings
}

func scanListing(rows *sql.Rows) (*domain.Listing, error) {
	var l domain.Listing
	var organic int
	var createdAt, updatedAt, status string

	err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.WasteType, &l.Category,
		&l.Weight, &l.Price, &l.Location, &l.Seller, &l.Phone, &l.Quality,
		&organic, &l.Image, &l.Date, &createdAt, &updatedAt, &status, &l.Views, &l.Likes)
	if err != nil {
		return nil, fmt.Errorf("scanning listing: %w", err)
	}

	l.Organic = organic != 0
	l.Status = domain.ListingStatus(status)
	l.CreatedAt = parseTime(createdAt)
	l.UpdatedAt = parseTime(updatedAt)

	return &l, nil
}

// timeLayout is RFC 3339 with fixed-width nanoseconds, so that
// lexicographic comparison in SQL matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Timestamps are stored as UTC strings.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
