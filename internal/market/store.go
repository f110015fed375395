package market

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ecocycle-dz/ecocycle/internal/domain"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
)

const (
	// maxSearchHistory caps the search history length.
	maxSearchHistory = 10

	// persistTimeout bounds each write-through snapshot save.
	persistTimeout = 3 * time.Second
)

// Store is the primary listing store: a synchronous in-memory
// collection of listings plus user-scoped state (favorites, search
// history), written through to a persisted snapshot on every
// mutation.
//
// Insertion order is append-only: updates never reorder the
// collection. Listing IDs are unique within the store.
type Store struct {
	mu        sync.RWMutex
	listings  []*domain.Listing
	byID      map[string]*domain.Listing
	favorites []string
	history   []string

	snap   Snapshotter
	logger logger.Logger
	now    func() time.Time
}

// NewStore creates a primary store. snap may be nil, in which case
// mutations are not persisted (used in tests).
func NewStore(snap Snapshotter, log logger.Logger) *Store {
	return &Store{
		byID:   make(map[string]*domain.Listing),
		snap:   snap,
		logger: log,
		now:    time.Now,
	}
}

// Restore replaces the store contents with a previously persisted
// snapshot. Does not write through.
func (s *Store) Restore(snap *Snapshot) {
	if snap == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.listings = make([]*domain.Listing, 0, len(snap.Listings))
	s.byID = make(map[string]*domain.Listing, len(snap.Listings))
	for _, l := range snap.Listings {
		if l == nil || l.ID == "" {
			continue
		}
		if _, exists := s.byID[l.ID]; exists {
			continue
		}
		c := l.Clone()
		s.listings = append(s.listings, c)
		s.byID[c.ID] = c
	}
	s.favorites = append([]string(nil), snap.Favorites...)
	s.history = append([]string(nil), snap.SearchHistory...)
}

// ─────────────────────────────────────────────────────────────────
// Listing mutations
// ─────────────────────────────────────────────────────────────────

// AddListing creates a listing from the draft, appends it to the
// collection and mirrors it into the backup log.
func (s *Store) AddListing(draft domain.Draft) *domain.Listing {
	s.mu.Lock()
	l := domain.NewListing(draft, s.now())
	s.listings = append(s.listings, l)
	s.byID[l.ID] = l
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snap)
	s.appendBackup(l)
	return l.Clone()
}

// AddExisting inserts an already populated listing (coming from the
// indexed store during a sync pass). No-op if the ID is already
// present.
func (s *Store) AddExisting(listing *domain.Listing) {
	if listing == nil || listing.ID == "" {
		return
	}

	s.mu.Lock()
	if _, exists := s.byID[listing.ID]; exists {
		s.mu.Unlock()
		return
	}
	c := listing.Clone()
	s.listings = append(s.listings, c)
	s.byID[c.ID] = c
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snap)
}

// RemoveListing removes the listing and drops it from favorites.
// No-op when the ID is absent.
func (s *Store) RemoveListing(id string) {
	s.mu.Lock()
	if _, exists := s.byID[id]; !exists {
		s.mu.Unlock()
		return
	}
	delete(s.byID, id)
	kept := s.listings[:0]
	for _, l := range s.listings {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.listings = kept
	s.favorites = removeString(s.favorites, id)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snap)
}

// UpdateListing merges the patch into the listing and refreshes
// UpdatedAt. Returns the updated listing, nil when the ID is absent.
func (s *Store) UpdateListing(id string, patch domain.Patch) *domain.Listing {
	s.mu.Lock()
	l, exists := s.byID[id]
	if !exists {
		s.mu.Unlock()
		return nil
	}
	patch.Apply(l)
	l.UpdatedAt = s.now()
	c := l.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snap)
	return c
}

// IncrementViews increments the view counter by one. Returns the
// updated listing, nil when the ID is absent.
func (s *Store) IncrementViews(id string) *domain.Listing {
	s.mu.Lock()
	l, exists := s.byID[id]
	if !exists {
		s.mu.Unlock()
		return nil
	}
	l.Views++
	c := l.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snap)
	return c
}

// ToggleLike adjusts the like counter based on current favorite
// membership: favorited listings lose a like, others gain one. The
// coupling between likes and favorites mirrors the historical
// behavior of the product.
func (s *Store) ToggleLike(id string) *domain.Listing {
	s.mu.Lock()
	l, exists := s.byID[id]
	if !exists {
		s.mu.Unlock()
		return nil
	}
	if containsString(s.favorites, id) {
		l.Likes--
	} else {
		l.Likes++
	}
	c := l.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snap)
	return c
}

// MarkAsSold transitions the listing to sold and refreshes
// UpdatedAt. Returns the updated listing, nil when the ID is absent.
func (s *Store) MarkAsSold(id string) *domain.Listing {
	s.mu.Lock()
	l, exists := s.byID[id]
	if !exists {
		s.mu.Unlock()
		return nil
	}
	l.Status = domain.StatusSold
	l.UpdatedAt = s.now()
	c := l.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snap)
	return c
}

// ─────────────────────────────────────────────────────────────────
// Favorites & search history
// ─────────────────────────────────────────────────────────────────

// AddToFavorites marks the listing as favorite. Idempotent.
func (s *Store) AddToFavorites(id string) {
	s.mu.Lock()
	if containsString(s.favorites, id) {
		s.mu.Unlock()
		return
	}
	s.favorites = append(s.favorites, id)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snap)
}

// RemoveFromFavorites unmarks the listing. Idempotent.
func (s *Store) RemoveFromFavorites(id string) {
	s.mu.Lock()
	if !containsString(s.favorites, id) {
		s.mu.Unlock()
		return
	}
	s.favorites = removeString(s.favorites, id)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snap)
}

// IsFavorite reports favorite membership.
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsString(s.favorites, id)
}

// Favorites returns the favorite listing IDs in insertion order.
func (s *Store) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.favorites...)
}

// AddSearchTerm pushes the term to the front of the search history.
// Re-entering an existing term promotes it instead of duplicating.
// The history is capped at 10 entries; blank terms are ignored.
func (s *Store) AddSearchTerm(term string) {
	if strings.TrimSpace(term) == "" {
		return
	}

	s.mu.Lock()
	next := make([]string, 0, len(s.history)+1)
	next = append(next, term)
	for _, t := range s.history {
		if t != term {
			next = append(next, t)
		}
	}
	if len(next) > maxSearchHistory {
		next = next[:maxSearchHistory]
	}
	s.history = next
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snap)
}

// ClearSearchHistory empties the search history.
func (s *Store) ClearSearchHistory() {
	s.mu.Lock()
	s.history = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snap)
}

// SearchHistory returns the history, most recent first.
func (s *Store) SearchHistory() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.history...)
}

// ─────────────────────────────────────────────────────────────────
// Queries
// ─────────────────────────────────────────────────────────────────

// Get returns a copy of the listing, or nil when absent.
func (s *Store) Get(id string) *domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.byID[id]; ok {
		return l.Clone()
	}
	return nil
}

// Listings returns a copy of the whole collection in insertion order.
func (s *Store) Listings() []*domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.listings)
}

// Count returns the number of listings in the store.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}

// ActiveListings returns all active listings in insertion order.
func (s *Store) ActiveListings() []*domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Listing
	for _, l := range s.listings {
		if l.Status == domain.StatusActive {
			out = append(out, l.Clone())
		}
	}
	return out
}

// ListingsByCategory filters active listings whose category or
// wasteType equals the given value. "all" returns every active
// listing. The wasteType fallback is specific to the primary store;
// the indexed store filters by category only.
func (s *Store) ListingsByCategory(category string) []*domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Listing
	for _, l := range s.listings {
		if l.Status != domain.StatusActive {
			continue
		}
		if category == "all" || l.Category == category || l.WasteType == category {
			out = append(out, l.Clone())
		}
	}
	return out
}

// SearchListings matches active listings whose title, description,
// wasteType, category or location contains the query
// (case-insensitive). A blank query returns all active listings.
func (s *Store) SearchListings(query string) []*domain.Listing {
	if strings.TrimSpace(query) == "" {
		return s.ActiveListings()
	}

	term := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Listing
	for _, l := range s.listings {
		if l.Status != domain.StatusActive {
			continue
		}
		if matchesTerm(l, term) {
			out = append(out, l.Clone())
		}
	}
	return out
}

func matchesTerm(l *domain.Listing, term string) bool {
	return strings.Contains(strings.ToLower(l.Title), term) ||
		strings.Contains(strings.ToLower(l.Description), term) ||
		strings.Contains(strings.ToLower(l.WasteType), term) ||
		strings.Contains(strings.ToLower(l.Category), term) ||
		strings.Contains(strings.ToLower(l.Location), term)
}

// ─────────────────────────────────────────────────────────────────
// Write-through persistence
// ─────────────────────────────────────────────────────────────────

// snapshotLocked builds a deep copy of the current state.
// Caller must hold at least the read lock.
func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Listings:      cloneAll(s.listings),
		Favorites:     append([]string(nil), s.favorites...),
		SearchHistory: append([]string(nil), s.history...),
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) persist(snap Snapshot) {
	if s.snap == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.snap.SaveSnapshot(ctx, snap); err != nil && s.logger != nil {
		s.logger.Warn("failed to persist marketplace snapshot",
			logger.Error(err))
	}
}

func (s *Store) appendBackup(l *domain.Listing) {
	if s.snap == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.snap.AppendBackup(ctx, l); err != nil && s.logger != nil {
		s.logger.Warn("failed to append listing to backup log",
			logger.String("listing_id", l.ID),
			logger.Error(err))
	}
}

func cloneAll(in []*domain.Listing) []*domain.Listing {
	out := make([]*domain.Listing, len(in))
	for i, l := range in {
		out[i] = l.Clone()
	}
	return out
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
