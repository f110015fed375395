package sqlite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ecocycle-dz/ecocycle/internal/domain"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema() error: %v", err)
	}

	return NewStore(db, logger.NewNop())
}

func testListing(id string) *domain.Listing {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	return &domain.Listing{
		ID:        id,
		Title:     "Marc de café",
		WasteType: "fruits",
		Category:  domain.CategoryOrganic,
		Weight:    2.5,
		Price:     150,
		Location:  "Alger Centre",
		Seller:    "Karim",
		Date:      now.Format("2006-01-02"),
		CreatedAt: now,
		UpdatedAt: now,
		Status:    domain.StatusActive,
	}
}

func TestSaveListingRejectsEmptyID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if store.SaveListing(ctx, nil) {
		t.Error("SaveListing(nil) = true, want false")
	}
	if store.SaveListing(ctx, &domain.Listing{}) {
		t.Error("SaveListing(empty id) = true, want false")
	}
	if got := len(store.GetAllListings(ctx)); got != 0 {
		t.Errorf("stored %d listings, want 0", got)
	}
}

func TestSaveListingUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	l := testListing("listing-1-aaaaaaa")
	if !store.SaveListing(ctx, l) {
		t.Fatal("SaveListing() = false")
	}

	l.Title = "Marc de café bio"
	l.Views = 7
	if !store.SaveListing(ctx, l) {
		t.Fatal("SaveListing() second call = false")
	}

	all := store.GetAllListings(ctx)
	if len(all) != 1 {
		t.Fatalf("GetAllListings() returned %d, want 1", len(all))
	}
	if all[0].Title != "Marc de café bio" {
		t.Errorf("Title = %q, want updated title", all[0].Title)
	}
	if all[0].Views != 7 {
		t.Errorf("Views = %d, want 7", all[0].Views)
	}
}

func TestRoundTripPreservesFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	l := testListing("listing-2-bbbbbbb")
	l.Organic = true
	l.CreatedAt = time.Date(2026, 8, 20, 10, 30, 15, 123456789, time.UTC)
	store.SaveListing(ctx, l)

	all := store.GetAllListings(ctx)
	if len(all) != 1 {
		t.Fatalf("GetAllListings() returned %d, want 1", len(all))
	}

	got := all[0]
	if !got.Organic {
		t.Error("Organic = false, want true")
	}
	if got.Status != domain.StatusActive {
		t.Errorf("Status = %q, want active", got.Status)
	}
	if !got.CreatedAt.Equal(l.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, l.CreatedAt)
	}
}

func TestGetListingsByCategoryIsExact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	organic := testListing("listing-3-ccccccc")
	organic.Category = domain.CategoryOrganic

	// Category does not match, only wasteType does. The indexed
	// lookup must not fall back to wasteType.
	tagged := testListing("listing-4-ddddddd")
	tagged.Category = domain.CategoryPaper
	tagged.WasteType = domain.CategoryOrganic

	store.SaveListing(ctx, organic)
	store.SaveListing(ctx, tagged)

	got := store.GetListingsByCategory(ctx, domain.CategoryOrganic)
	if len(got) != 1 {
		t.Fatalf("GetListingsByCategory() returned %d, want 1", len(got))
	}
	if got[0].ID != organic.ID {
		t.Errorf("got listing %s, want %s", got[0].ID, organic.ID)
	}
}

func TestDeleteListingIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.SaveListing(ctx, testListing("listing-5-eeeeeee"))

	if !store.DeleteListing(ctx, "listing-5-eeeeeee") {
		t.Error("DeleteListing() = false")
	}
	if !store.DeleteListing(ctx, "listing-5-eeeeeee") {
		t.Error("DeleteListing() on absent id = false, want true")
	}
	if got := len(store.GetAllListings(ctx)); got != 0 {
		t.Errorf("stored %d listings after delete, want 0", got)
	}
}

func TestSearchListings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cheap := testListing("listing-6-fffffff")
	cheap.Title = "Cartons propres"
	cheap.Category = domain.CategoryPaper
	cheap.WasteType = "carton"
	cheap.Price = 50
	cheap.Weight = 10
	cheap.Location = "Oran"

	pricey := testListing("listing-7-ggggggg")
	pricey.Title = "Compost mûr"
	pricey.Category = domain.CategoryOrganic
	pricey.Price = 400
	pricey.Weight = 25
	pricey.Location = "Alger Centre"

	sold := testListing("listing-8-hhhhhhh")
	sold.Title = "Verre blanc"
	sold.Category = domain.CategoryGlass
	sold.Status = domain.StatusSold

	for _, l := range []*domain.Listing{cheap, pricey, sold} {
		store.SaveListing(ctx, l)
	}

	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name  string
		query domain.SearchQuery
		want  []string
	}{
		{
			name:  "empty query returns active only",
			query: domain.SearchQuery{},
			want:  []string{cheap.ID, pricey.ID},
		},
		{
			name:  "text matches title case-insensitively",
			query: domain.SearchQuery{Text: "COMPOST"},
			want:  []string{pricey.ID},
		},
		{
			name:  "category all disables the filter",
			query: domain.SearchQuery{Category: "all"},
			want:  []string{cheap.ID, pricey.ID},
		},
		{
			name:  "category matches wasteType too",
			query: domain.SearchQuery{Category: "carton"},
			want:  []string{cheap.ID},
		},
		{
			name:  "location is a substring match",
			query: domain.SearchQuery{Location: "alger"},
			want:  []string{pricey.ID},
		},
		{
			name:  "price bounds are inclusive",
			query: domain.SearchQuery{PriceMin: f(50), PriceMax: f(50)},
			want:  []string{cheap.ID},
		},
		{
			name:  "weight bounds exclude the rest",
			query: domain.SearchQuery{WeightMin: f(20)},
			want:  []string{pricey.ID},
		},
		{
			name:  "sold listings never match",
			query: domain.SearchQuery{Text: "verre"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.SearchListings(ctx, tt.query)

			ids := make(map[string]bool, len(got))
			for _, l := range got {
				ids[l.ID] = true
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %d listings, want %d", len(got), len(tt.want))
			}
			for _, id := range tt.want {
				if !ids[id] {
					t.Errorf("missing listing %s", id)
				}
			}
		})
	}
}

func TestGetStatistics(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	add := func(id string, age time.Duration, status domain.ListingStatus, category, location string, views, likes int) {
		l := testListing(id)
		l.CreatedAt = now.Add(-age)
		l.Status = status
		l.Category = category
		l.Location = location
		l.Views = views
		l.Likes = likes
		if !store.SaveListing(ctx, l) {
			t.Fatalf("SaveListing(%s) = false", id)
		}
	}

	day := 24 * time.Hour
	add("listing-a-0000001", 1*day, domain.StatusActive, domain.CategoryOrganic, "Alger Centre", 10, 2)
	add("listing-b-0000002", 3*day, domain.StatusActive, domain.CategoryOrganic, "Oran", 5, 1)
	add("listing-c-0000003", 6*day, domain.StatusSold, domain.CategoryPaper, "", 3, 0)
	add("listing-d-0000004", 10*day, domain.StatusActive, "", "Alger Centre", 2, 4)

	stats := store.GetStatistics(ctx)

	if stats.TotalListings != 4 {
		t.Errorf("TotalListings = %d, want 4", stats.TotalListings)
	}
	if stats.ActiveListings != 3 {
		t.Errorf("ActiveListings = %d, want 3", stats.ActiveListings)
	}
	if stats.SoldListings != 1 {
		t.Errorf("SoldListings = %d, want 1", stats.SoldListings)
	}
	if stats.ThisWeekListings != 3 {
		t.Errorf("ThisWeekListings = %d, want 3", stats.ThisWeekListings)
	}
	if stats.TotalViews != 20 {
		t.Errorf("TotalViews = %d, want 20", stats.TotalViews)
	}
	if stats.TotalLikes != 7 {
		t.Errorf("TotalLikes = %d, want 7", stats.TotalLikes)
	}

	if got := stats.CategoryBreakdown[domain.CategoryOrganic]; got != 2 {
		t.Errorf("CategoryBreakdown[organic] = %d, want 2", got)
	}
	if got := stats.CategoryBreakdown[domain.FallbackCategory]; got != 1 {
		t.Errorf("CategoryBreakdown[%s] = %d, want 1", domain.FallbackCategory, got)
	}
	if got := stats.LocationBreakdown["Alger Centre"]; got != 2 {
		t.Errorf(`LocationBreakdown["Alger Centre"] = %d, want 2`, got)
	}
	if got := stats.LocationBreakdown[domain.FallbackLocation]; got != 1 {
		t.Errorf("LocationBreakdown[%s] = %d, want 1", domain.FallbackLocation, got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore(t)
	dst := newTestStore(t)
	ctx := context.Background()

	a := testListing("listing-9-iiiiiii")
	b := testListing("listing-10-jjjjjjj")
	b.Status = domain.StatusSold
	b.Organic = true
	src.SaveListing(ctx, a)
	src.SaveListing(ctx, b)

	data, ok := src.ExportData(ctx)
	if !ok {
		t.Fatal("ExportData() = false")
	}

	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.Version != SchemaVersion {
		t.Errorf("Version = %d, want %d", doc.Version, SchemaVersion)
	}
	if len(doc.Listings) != 2 {
		t.Errorf("exported %d listings, want 2", len(doc.Listings))
	}

	if !dst.ImportData(ctx, data) {
		t.Fatal("ImportData() = false")
	}

	all := dst.GetAllListings(ctx)
	if len(all) != 2 {
		t.Fatalf("imported %d listings, want 2", len(all))
	}
	byID := map[string]*domain.Listing{}
	for _, l := range all {
		byID[l.ID] = l
	}
	if got := byID[b.ID]; got == nil || got.Status != domain.StatusSold || !got.Organic {
		t.Errorf("listing %s did not survive the round trip intact", b.ID)
	}
}

func TestImportRejectsMissingListings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.SaveListing(ctx, testListing("listing-11-kkkkkkk"))

	for _, doc := range []string{
		`{"exportDate": "2026-08-25T00:00:00Z", "version": 1}`,
		`not json at all`,
		`{"listings": "oops"}`,
	} {
		if store.ImportData(ctx, []byte(doc)) {
			t.Errorf("ImportData(%q) = true, want false", doc)
		}
	}

	if got := len(store.GetAllListings(ctx)); got != 1 {
		t.Errorf("stored %d listings after rejected imports, want 1", got)
	}
}

func TestImportIsAdditive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	existing := testListing("listing-12-lllllll")
	store.SaveListing(ctx, existing)

	incoming := testListing("listing-13-mmmmmmm")
	doc := ExportDocument{
		Listings:   []*domain.Listing{incoming},
		ExportDate: time.Now(),
		Version:    SchemaVersion,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if !store.ImportData(ctx, data) {
		t.Fatal("ImportData() = false")
	}

	all := store.GetAllListings(ctx)
	if len(all) != 2 {
		t.Fatalf("stored %d listings, want 2 (import must never delete)", len(all))
	}
}
