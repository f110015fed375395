package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite database connection and configures pragmas.
// Use ":memory:" for an ephemeral database.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set pragmas for performance and correctness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	return db, nil
}

// EnsureSchema creates the listings table and its indexes if they do
// not exist yet. The secondary attributes the UI queries by
// (category, wasteType, location, status, createdAt) are indexed.
func EnsureSchema(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS listings (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			waste_type  TEXT NOT NULL DEFAULT '',
			category    TEXT NOT NULL DEFAULT '',
			weight      REAL NOT NULL DEFAULT 0,
			price       REAL NOT NULL DEFAULT 0,
			location    TEXT NOT NULL DEFAULT '',
			seller      TEXT NOT NULL DEFAULT '',
			phone       TEXT NOT NULL DEFAULT '',
			quality     TEXT NOT NULL DEFAULT '',
			organic     INTEGER NOT NULL DEFAULT 0,
			image       TEXT NOT NULL DEFAULT '',
			date        TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL DEFAULT '',
			updated_at  TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL DEFAULT 'active',
			views       INTEGER NOT NULL DEFAULT 0,
			likes       INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_category ON listings (category)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_waste_type ON listings (waste_type)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_location ON listings (location)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_status ON listings (status)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings (created_at)`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	return nil
}
