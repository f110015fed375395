package syncer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ecocycle-dz/ecocycle/internal/domain"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
	"github.com/ecocycle-dz/ecocycle/internal/market"
	"github.com/ecocycle-dz/ecocycle/internal/store/sqlite"
)

func newTestSyncer(t *testing.T) (*Syncer, *market.Store, *sqlite.Store) {
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
	secondary := sqlite.NewStore(db, logger.NewNop())
	s := New(primary, secondary, logger.NewNop(), time.Hour, make(chan struct{}, 1))

	return s, primary, secondary
}

func storedListing(id string) *domain.Listing {
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	return &domain.Listing{
		ID:        id,
		Title:     "Bouteilles en verre",
		Category:  domain.CategoryGlass,
		CreatedAt: now,
		UpdatedAt: now,
		Status:    domain.StatusActive,
	}
}

func TestSyncMergesBothDirections(t *testing.T) {
	s, primary, secondary := newTestSyncer(t)
	ctx := context.Background()

	// Present only in memory.
	memOnly := primary.AddListing(domain.Draft{Title: "Compost"})

	// Present only in the durable store.
	secondary.SaveListing(ctx, storedListing("listing-42-zzzzzzz"))

	if err := s.Sync(ctx); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}

	if primary.Get("listing-42-zzzzzzz") == nil {
		t.Error("durable-only listing was not pulled into memory")
	}

	stored := secondary.GetAllListings(ctx)
	found := false
	for _, l := range stored {
		if l.ID == memOnly.ID {
			found = true
		}
	}
	if !found {
		t.Error("memory-only listing was not persisted durably")
	}
	if len(stored) != 2 {
		t.Errorf("durable store holds %d listings, want 2", len(stored))
	}
}

func TestSyncLeavesSharedRecordsUntouched(t *testing.T) {
	s, primary, secondary := newTestSyncer(t)
	ctx := context.Background()

	shared := storedListing("listing-43-yyyyyyy")
	shared.Title = "Version durable"
	secondary.SaveListing(ctx, shared)

	memCopy := shared.Clone()
	memCopy.Title = "Version mémoire"
	primary.AddExisting(memCopy)

	if err := s.Sync(ctx); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}

	// The in-memory copy wins: it is what callers see, and sync does
	// not overwrite it from the durable side.
	if got := primary.Get(shared.ID); got.Title != "Version mémoire" {
		t.Errorf("memory Title = %q, want the in-memory version", got.Title)
	}

	// Nor does sync push the memory copy over the durable one.
	stored := secondary.GetAllListings(ctx)
	if len(stored) != 1 || stored[0].Title != "Version durable" {
		t.Error("sync rewrote a record present on both sides")
	}
}

func TestSaveListingWritesBothSides(t *testing.T) {
	s, primary, secondary := newTestSyncer(t)
	ctx := context.Background()

	report := s.SaveListing(ctx, domain.Draft{
		Title:    "Marc de café",
		Price:    15,
		Weight:   1,
		Category: domain.CategoryOrganic,
	})

	if !report.Primary || !report.Secondary {
		t.Fatalf("report = %+v, want both sides true", report.Report)
	}
	if report.Listing == nil || report.Listing.ID == "" {
		t.Fatal("report carries no listing")
	}
	if report.Listing.Status != domain.StatusActive {
		t.Errorf("Status = %q, want active", report.Listing.Status)
	}

	if primary.Get(report.Listing.ID) == nil {
		t.Error("listing missing from memory store")
	}
	if got := len(secondary.GetAllListings(ctx)); got != 1 {
		t.Errorf("durable store holds %d listings, want 1", got)
	}
	if s.LastError() != "" {
		t.Errorf("LastError() = %q, want empty", s.LastError())
	}
}

// TestSaveListingPopulatesDurableCopyIndependently pins the dual-id
// behavior of a save: the durable store receives its own freshly
// built record, not a copy of the in-memory one, so the two sides
// hold distinct ids for the same draft.
func TestSaveListingPopulatesDurableCopyIndependently(t *testing.T) {
	s, primary, secondary := newTestSyncer(t)
	ctx := context.Background()

	report := s.SaveListing(ctx, domain.Draft{
		Title:    "Marc de café",
		Category: domain.CategoryOrganic,
	})

	stored := secondary.GetAllListings(ctx)
	if len(stored) != 1 {
		t.Fatalf("durable store holds %d listings, want 1", len(stored))
	}
	durable := stored[0]

	if durable.ID == report.Listing.ID {
		t.Errorf("durable id = %q, want it distinct from the primary id", durable.ID)
	}
	if durable.Title != "Marc de café" || durable.Status != domain.StatusActive {
		t.Errorf("durable copy = %q/%q, want a fully populated active record",
			durable.Title, durable.Status)
	}
	if durable.Views != 0 || durable.Likes != 0 {
		t.Errorf("durable counters = (%d, %d), want (0, 0)", durable.Views, durable.Likes)
	}

	// The durable twin is not in memory yet; a sync pass pulls it in
	// as a second record.
	if got := primary.Count(); got != 1 {
		t.Fatalf("memory holds %d listings before sync, want 1", got)
	}
	if err := s.Sync(ctx); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if got := primary.Count(); got != 2 {
		t.Errorf("memory holds %d listings after sync, want 2", got)
	}
	if primary.Get(durable.ID) == nil {
		t.Error("sync did not pull the durable twin into memory")
	}
}

func TestSaveListingReportsSecondaryFailure(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := sqlite.EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema() error: %v", err)
	}

	primary := market.NewStore(nil, nil)
	secondary := sqlite.NewStore(db, logger.NewNop())
	s := New(primary, secondary, logger.NewNop(), time.Hour, nil)

	// A closed database makes every durable write fail.
	db.Close()

	report := s.SaveListing(context.Background(), domain.Draft{Title: "Cartons"})

	if !report.Primary {
		t.Error("Primary = false, want true (memory write is synchronous)")
	}
	if report.Secondary {
		t.Error("Secondary = true, want false")
	}
	if primary.Get(report.Listing.ID) == nil {
		t.Error("primary write was rolled back, want it kept")
	}
	if s.LastError() == "" {
		t.Error("LastError() is empty, want a failure message")
	}
}

func TestDeleteListingRemovesBothSides(t *testing.T) {
	s, primary, secondary := newTestSyncer(t)
	ctx := context.Background()

	// A sync pass gives both stores the same id for this record.
	created := primary.AddListing(domain.Draft{Title: "Verre"})
	if err := s.Sync(ctx); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}

	del := s.DeleteListing(ctx, created.ID)
	if !del.Primary || !del.Secondary {
		t.Fatalf("delete report = %+v, want both sides true", del)
	}

	if primary.Get(created.ID) != nil {
		t.Error("listing still in memory store")
	}
	if got := len(secondary.GetAllListings(ctx)); got != 0 {
		t.Errorf("durable store holds %d listings, want 0", got)
	}
}

// TestNewGuardsNonPositiveInterval covers a configured interval of
// zero, which time.NewTicker would reject at Start.
func TestNewGuardsNonPositiveInterval(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := sqlite.EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema() error: %v", err)
	}

	zero := New(market.NewStore(nil, nil), sqlite.NewStore(db, logger.NewNop()),
		logger.NewNop(), 0, nil)
	if zero.interval != defaultSyncInterval {
		t.Errorf("interval = %v, want fallback %v", zero.interval, defaultSyncInterval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := zero.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	zero.Stop()
}

func TestExportUsesDatedFilename(t *testing.T) {
	s, _, _ := newTestSyncer(t)

	data, filename, ok := s.Export(context.Background())
	if !ok {
		t.Fatal("Export() = false")
	}
	if len(data) == 0 {
		t.Error("Export() returned no data")
	}

	want := "ecocycle-backup-" + time.Now().Format("2006-01-02") + ".json"
	if filename != want {
		t.Errorf("filename = %q, want %q", filename, want)
	}
}

func TestImportSyncsIntoMemory(t *testing.T) {
	s, primary, secondary := newTestSyncer(t)
	ctx := context.Background()

	// Build a backup in a separate durable store.
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer db.Close()
	if err := sqlite.EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema() error: %v", err)
	}
	origin := sqlite.NewStore(db, logger.NewNop())
	origin.SaveListing(ctx, storedListing("listing-44-xxxxxxx"))

	backup, ok := origin.ExportData(ctx)
	if !ok {
		t.Fatal("ExportData() = false")
	}

	if !s.Import(ctx, backup) {
		t.Fatal("Import() = false")
	}

	if got := len(secondary.GetAllListings(ctx)); got != 1 {
		t.Errorf("durable store holds %d listings, want 1", got)
	}
	if primary.Get("listing-44-xxxxxxx") == nil {
		t.Error("imported listing was not synced into memory")
	}
}

func TestImportRejectsBadDocument(t *testing.T) {
	s, _, _ := newTestSyncer(t)

	if s.Import(context.Background(), []byte(`{"version": 1}`)) {
		t.Error("Import() accepted a document without listings")
	}
	if msg := s.LastError(); !strings.Contains(msg, "import") {
		t.Errorf("LastError() = %q, want an import failure message", msg)
	}
}
