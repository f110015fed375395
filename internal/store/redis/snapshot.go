package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ecocycle-dz/ecocycle/internal/domain"
	"github.com/ecocycle-dz/ecocycle/internal/market"
)

// Store persists primary-store snapshots in Redis under a fixed key
// namespace. The snapshot is a single JSON document; every mutation
// of the primary store rewrites it (write-through, no TTL).
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis snapshot store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveSnapshot replaces the persisted snapshot.
func (s *Store) SaveSnapshot(ctx context.Context, snap market.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, KeySnapshot, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot retrieves the persisted snapshot. Returns nil when no
// snapshot has been written yet.
func (s *Store) LoadSnapshot(ctx context.Context) (*market.Snapshot, error) {
	data, err := s.client.Get(ctx, KeySnapshot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // No snapshot yet
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap market.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snap, nil
}

// AppendBackup appends a created listing to the backup log. The log
// mirrors every creation in order; it is a trace, not a second
// source of truth.
func (s *Store) AppendBackup(ctx context.Context, listing *domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("failed to marshal listing %s: %w", listing.ID, err)
	}

	if err := s.client.RPush(ctx, KeyBackupLog, data).Err(); err != nil {
		return fmt.Errorf("failed to append to backup log: %w", err)
	}

	return nil
}

// BackupLog returns the full backup log in append order.
func (s *Store) BackupLog(ctx context.Context) ([]*domain.Listing, error) {
	entries, err := s.client.LRange(ctx, KeyBackupLog, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read backup log: %w", err)
	}

	listings := make([]*domain.Listing, 0, len(entries))
	for _, entry := range entries {
		var l domain.Listing
		if err := json.Unmarshal([]byte(entry), &l); err != nil {
			// Skip entries that couldn't be decoded
			continue
		}
		listings = append(listings, &l)
	}

	return listings, nil
}
