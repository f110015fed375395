package redis

const (
	// KeySnapshot holds the JSON snapshot of the primary store
	// (listings, favorites, search history).
	KeySnapshot = "ecocycle:marketplace:snapshot"

	// KeyBackupLog is the append-only list of created listings.
	KeyBackupLog = "ecocycle:marketplace:backup"
)
