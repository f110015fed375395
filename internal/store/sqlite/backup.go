package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecocycle-dz/ecocycle/internal/domain"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
)

// SchemaVersion is stamped into exports so older backups can be
// recognized if the schema ever changes.
const SchemaVersion = 1

// ExportDocument is the transportable backup format: all listings
// plus an export timestamp and the schema version. Serialized as
// indented, human-readable JSON.
type ExportDocument struct {
	Listings   []*domain.Listing `json:"listings"`
	ExportDate time.Time         `json:"exportDate"`
	Version    int               `json:"version"`
}

// importEnvelope keeps the listings payload raw so that a document
// without a listings array can be told apart from an empty one.
type importEnvelope struct {
	Listings json.RawMessage `json:"listings"`
}

// ExportData serializes all stored listings into a backup document.
// Returns false when the export could not be produced.
func (s *Store) ExportData(ctx context.Context) ([]byte, bool) {
	listings := s.GetAllListings(ctx)

	doc := ExportDocument{
		Listings:   listings,
		ExportDate: s.now().UTC(),
		Version:    SchemaVersion,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.logger.Error("failed to serialize export", logger.Error(err))
		return nil, false
	}

	return data, true
}

// ImportData parses a backup document and upserts every contained
// listing by ID. Existing IDs are overwritten, new ones inserted;
// records absent from the document are never deleted (import is
// additive, not subtractive).
//
// Documents without a listings array are rejected wholesale: no
// partial processing happens and false is returned.
func (s *Store) ImportData(ctx context.Context, data []byte) bool {
	var envelope importEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		s.logger.Error("failed to parse import document", logger.Error(err))
		return false
	}
	if envelope.Listings == nil {
		s.logger.Warn("import document has no listings array")
		return false
	}

	var listings []*domain.Listing
	if err := json.Unmarshal(envelope.Listings, &listings); err != nil {
		s.logger.Error("failed to parse listings in import document", logger.Error(err))
		return false
	}

	ok := true
	for _, l := range listings {
		if !s.SaveListing(ctx, l) {
			ok = false
		}
	}

	return ok
}
