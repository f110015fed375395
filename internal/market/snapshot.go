package market

import (
	"context"

	"github.com/ecocycle-dz/ecocycle/internal/domain"
)

// Snapshot is the persisted image of the primary store: the full
// listing collection plus the user-scoped state (favorites, search
// history). It is written through on every mutation and loaded once
// at startup.
type Snapshot struct {
	Listings      []*domain.Listing `json:"listings"`
	Favorites     []string          `json:"favorites"`
	SearchHistory []string          `json:"searchHistory"`
}

// Snapshotter persists primary-store snapshots. The store treats it
// as best effort: a failed write is logged, never surfaced to the
// mutating caller.
type Snapshotter interface {
	// SaveSnapshot replaces the persisted snapshot.
	SaveSnapshot(ctx context.Context, snap Snapshot) error

	// LoadSnapshot returns the persisted snapshot, or nil when none
	// exists yet.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)

	// AppendBackup appends a newly created listing to the backup log.
	// The log is an observable trace of creations, not authoritative.
	AppendBackup(ctx context.Context, listing *domain.Listing) error
}
