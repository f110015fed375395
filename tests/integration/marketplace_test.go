package integration

import (
	"context"
	"testing"
	"time"

	"github.com/ecocycle-dz/ecocycle/internal/domain"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
	"github.com/ecocycle-dz/ecocycle/internal/market"
	"github.com/ecocycle-dz/ecocycle/internal/store/sqlite"
	"github.com/ecocycle-dz/ecocycle/internal/syncer"
)

func newStack(t *testing.T) (*syncer.Syncer, *market.Store, *sqlite.Store) {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := sqlite.EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema() error: %v", err)
	}

	primary := market.NewStore(nil, nil)
	catalog := sqlite.NewStore(db, logger.NewNop())
	s := syncer.New(primary, catalog, logger.NewNop(), time.Hour, make(chan struct{}, 1))

	return s, primary, catalog
}

// TestPublishAndFindScenario walks the happy path of a seller
// publishing an offer and a buyer finding it right away.
func TestPublishAndFindScenario(t *testing.T) {
	s, primary, _ := newStack(t)
	ctx := context.Background()

	report := s.SaveListing(ctx, domain.Draft{
		Title:    "Marc de café",
		Price:    15,
		Weight:   1,
		Category: domain.CategoryOrganic,
		Location: "Alger Centre",
		Seller:   "Karim",
	})

	if !report.Primary || !report.Secondary {
		t.Fatalf("save report = %+v, want both sides true", report.Report)
	}

	created := report.Listing
	if created.ID == "" {
		t.Fatal("created listing has no id")
	}
	if created.Status != domain.StatusActive {
		t.Errorf("Status = %q, want active", created.Status)
	}
	if created.Views != 0 || created.Likes != 0 {
		t.Errorf("counters = (%d, %d), want (0, 0)", created.Views, created.Likes)
	}

	// A buyer searches immediately after publication.
	results := primary.SearchListings("café")
	if len(results) != 1 {
		t.Fatalf("SearchListings(café) returned %d results, want 1", len(results))
	}
	if results[0].ID != created.ID {
		t.Errorf("search returned %s, want %s", results[0].ID, created.ID)
	}

	// Structured search on the indexed side sees the offer too, under
	// the durable copy's own id.
	indexed := s.Search(ctx, domain.SearchQuery{Category: domain.CategoryOrganic})
	if len(indexed) != 1 || indexed[0].Title != created.Title {
		t.Fatalf("indexed search = %v, want the new offer", indexed)
	}
	if indexed[0].ID == created.ID {
		t.Error("durable copy shares the in-memory id, want an independent record")
	}
}

// TestSoldListingsLeaveActiveView covers the sold transition: the
// listing stays in the collection but stops appearing as active.
func TestSoldListingsLeaveActiveView(t *testing.T) {
	s, primary, _ := newStack(t)
	ctx := context.Background()

	a := s.SaveListing(ctx, domain.Draft{Title: "Compost"}).Listing
	b := s.SaveListing(ctx, domain.Draft{Title: "Verre"}).Listing

	if sold := primary.MarkAsSold(a.ID); sold == nil || sold.Status != domain.StatusSold {
		t.Fatalf("MarkAsSold() = %v, want sold listing", sold)
	}

	active := primary.ActiveListings()
	if len(active) != 1 || active[0].ID != b.ID {
		t.Errorf("ActiveListings() = %d entries, want only %s", len(active), b.ID)
	}
	if primary.Count() != 2 {
		t.Errorf("Count() = %d, want 2 (sold listings stay)", primary.Count())
	}
}

// TestBackupRestoreAcrossStacks exports one deployment's catalog and
// imports it into a fresh one, which must then serve the listings
// from memory as well.
func TestBackupRestoreAcrossStacks(t *testing.T) {
	source, _, _ := newStack(t)
	target, targetPrimary, targetCatalog := newStack(t)
	ctx := context.Background()

	for _, title := range []string{"Cartons", "Bouteilles", "Palettes"} {
		if r := source.SaveListing(ctx, domain.Draft{Title: title}); !r.Secondary {
			t.Fatalf("SaveListing(%s) did not reach the durable store", title)
		}
	}

	data, filename, ok := source.Export(ctx)
	if !ok {
		t.Fatal("Export() = false")
	}
	if filename == "" {
		t.Error("Export() returned no filename")
	}

	if !target.Import(ctx, data) {
		t.Fatal("Import() = false")
	}

	if got := len(targetCatalog.GetAllListings(ctx)); got != 3 {
		t.Errorf("target catalog holds %d listings, want 3", got)
	}
	if got := targetPrimary.Count(); got != 3 {
		t.Errorf("target memory store holds %d listings, want 3", got)
	}
}

// TestCategoryFilterAsymmetry documents the intentional divergence
// between the two category lookups: the memory store falls back to
// the wasteType tag, the indexed store matches category exactly.
func TestCategoryFilterAsymmetry(t *testing.T) {
	s, primary, catalog := newStack(t)
	ctx := context.Background()

	report := s.SaveListing(ctx, domain.Draft{
		Title:     "Épluchures",
		Category:  domain.CategoryOrganic,
		WasteType: "fruits",
	})
	id := report.Listing.ID

	inMemory := primary.ListingsByCategory("fruits")
	if len(inMemory) != 1 || inMemory[0].ID != id {
		t.Errorf("memory lookup by wasteType returned %d results, want 1", len(inMemory))
	}

	indexed := catalog.GetListingsByCategory(ctx, "fruits")
	if len(indexed) != 0 {
		t.Errorf("indexed lookup by wasteType returned %d results, want 0", len(indexed))
	}
}

// TestSessionStateSurvivesSnapshot exercises favorites and search
// history through a snapshot round trip.
func TestSessionStateSurvivesSnapshot(t *testing.T) {
	_, primary, _ := newStack(t)

	l := primary.AddListing(domain.Draft{Title: "Verre blanc"})
	primary.AddToFavorites(l.ID)
	primary.AddSearchTerm("verre")
	primary.AddSearchTerm("compost")

	snap := primary.Snapshot()

	restored := market.NewStore(nil, nil)
	restored.Restore(&snap)

	if !restored.IsFavorite(l.ID) {
		t.Error("favorite lost across snapshot restore")
	}
	history := restored.SearchHistory()
	if len(history) != 2 || history[0] != "compost" {
		t.Errorf("SearchHistory() = %v, want [compost verre]", history)
	}
	if restored.Count() != 1 {
		t.Errorf("Count() = %d, want 1", restored.Count())
	}
}
