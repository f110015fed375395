package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ecocycle-dz/ecocycle/internal/domain"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
	"github.com/ecocycle-dz/ecocycle/internal/market"
	"github.com/ecocycle-dz/ecocycle/internal/store/sqlite"
)

// Syncer reconciles the in-memory primary store with the indexed
// durable store and is the single component allowed to write to both
// in one logical operation. The dual writes are not transactional:
// one side can succeed while the other fails, and callers get a
// per-side report instead of a rollback.
type Syncer struct {
	primary   *market.Store
	secondary *sqlite.Store
	logger    logger.Logger

	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}

	mu      sync.Mutex
	lastErr string
}

// Report carries the outcome of a dual write, one flag per store.
type Report struct {
	Primary   bool `json:"primary"`
	Secondary bool `json:"secondary"`
}

// SaveReport is the outcome of a listing save: the stored record plus
// the per-store write results.
type SaveReport struct {
	Listing *domain.Listing `json:"listing"`
	Report
}

// defaultSyncInterval is used when the configured interval is not a
// positive duration; a ticker cannot be built from zero.
const defaultSyncInterval = 15 * time.Minute

// New creates a syncer over the two stores. manualTrigger lets other
// components (HTTP handlers) request an out-of-band sync pass.
func New(
	primary *market.Store,
	secondary *sqlite.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Syncer {
	if interval <= 0 {
		log.Warn("non-positive sync interval, using default",
			logger.Duration("interval", interval),
			logger.Duration("default", defaultSyncInterval))
		interval = defaultSyncInterval
	}
	return &Syncer{
		primary:       primary,
		secondary:     secondary,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs an initial sync pass, then keeps reconciling on a timer
// and on manual triggers until the context is cancelled or Stop is
// called.
func (s *Syncer) Start(ctx context.Context) error {
	if err := s.Sync(ctx); err != nil {
		return fmt.Errorf("initial sync failed: %w", err)
	}

	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.Sync(ctx); err != nil {
					s.logger.Error("periodic sync failed",
						logger.Error(err))
				}
			case <-s.manualTrigger:
				s.logger.Info("manual sync triggered")
				if err := s.Sync(ctx); err != nil {
					s.logger.Error("manual sync failed",
						logger.Error(err))
				}
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the background reconciliation loop.
func (s *Syncer) Stop() {
	close(s.stopCh)
}

// Sync merges the two stores by id presence: records only in the
// durable store are added to the memory store, records only in memory
// are persisted durably. Records present on both sides are left
// untouched; the in-memory copy is what callers see, so it wins on
// divergence. No field-level merge and no timestamp comparison.
func (s *Syncer) Sync(ctx context.Context) error {
	s.logger.Info("syncing listings between stores")

	stored := s.secondary.GetAllListings(ctx)
	inMemory := s.primary.Listings()

	memoryIDs := make(map[string]bool, len(inMemory))
	for _, l := range inMemory {
		memoryIDs[l.ID] = true
	}
	storedIDs := make(map[string]bool, len(stored))
	for _, l := range stored {
		storedIDs[l.ID] = true
	}

	var pulled, pushed int
	for _, l := range stored {
		if !memoryIDs[l.ID] {
			s.primary.AddExisting(l)
			pulled++
		}
	}
	for _, l := range inMemory {
		if !storedIDs[l.ID] {
			if !s.secondary.SaveListing(ctx, l) {
				s.setError(fmt.Sprintf("could not persist listing %s during sync", l.ID))
				continue
			}
			pushed++
		}
	}

	s.logger.Info("sync pass complete",
		logger.Int("pulled", pulled),
		logger.Int("pushed", pushed))

	return nil
}

// SaveListing creates a listing from the draft in the primary store,
// then independently persists a second record built from the same
// draft to the durable store. The two records carry distinct ids and
// timestamps; a later sync pass pulls the durable copy into memory as
// its own entry. The primary write is synchronous and always lands;
// the report says what happened on each side and carries the primary
// record, whose id is the one callers address afterwards.
func (s *Syncer) SaveListing(ctx context.Context, draft domain.Draft) SaveReport {
	listing := s.primary.AddListing(draft)

	report := SaveReport{
		Listing: listing,
		Report:  Report{Primary: true},
	}

	durable := domain.NewListing(draft, time.Now())
	report.Secondary = s.secondary.SaveListing(ctx, durable)
	if !report.Secondary {
		s.setError(fmt.Sprintf("listing %s saved in memory only", listing.ID))
	} else {
		s.clearError()
	}

	return report
}

// DeleteListing removes the listing with the given id from both
// stores, primary first. Both removals are idempotent on their own
// side. The durable twin a SaveListing call created lives under a
// different id and is not reached here.
func (s *Syncer) DeleteListing(ctx context.Context, id string) Report {
	s.primary.RemoveListing(id)

	report := Report{Primary: true}
	report.Secondary = s.secondary.DeleteListing(ctx, id)
	if !report.Secondary {
		s.setError(fmt.Sprintf("listing %s removed from memory only", id))
	} else {
		s.clearError()
	}

	return report
}

// Search runs a structured query against the durable store.
func (s *Syncer) Search(ctx context.Context, q domain.SearchQuery) []*domain.Listing {
	return s.secondary.SearchListings(ctx, q)
}

// Statistics aggregates over the durable store.
func (s *Syncer) Statistics(ctx context.Context) domain.Statistics {
	return s.secondary.GetStatistics(ctx)
}

// Export produces a backup document and the dated filename to serve
// it under.
func (s *Syncer) Export(ctx context.Context) (data []byte, filename string, ok bool) {
	data, ok = s.secondary.ExportData(ctx)
	if !ok {
		s.setError("could not export listings")
		return nil, "", false
	}
	s.clearError()

	filename = fmt.Sprintf("ecocycle-backup-%s.json", time.Now().Format("2006-01-02"))
	return data, filename, true
}

// Import loads a backup document into the durable store, then re-runs
// a sync pass so the memory store picks up the imported records.
func (s *Syncer) Import(ctx context.Context, data []byte) bool {
	if !s.secondary.ImportData(ctx, data) {
		s.setError("could not import backup document")
		return false
	}

	if err := s.Sync(ctx); err != nil {
		s.setError("imported, but sync failed: " + err.Error())
		return false
	}

	s.clearError()
	return true
}

// LastError returns the most recent operation failure message, empty
// when the last operation succeeded. There is a single slot; a new
// failure overwrites the previous one.
func (s *Syncer) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Syncer) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()

	s.logger.Warn("sync operation failed", logger.String("reason", msg))
}

func (s *Syncer) clearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}
