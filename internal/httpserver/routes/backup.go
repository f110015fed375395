package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
	"github.com/ecocycle-dz/ecocycle/internal/httpserver/handlers"
	"github.com/ecocycle-dz/ecocycle/internal/httpserver/mw"
)

func init() { Register(registerBackup) }

// Backup endpoints move whole-collection documents, so they are rate
// limited per client IP.
func registerBackup(r chi.Router, d deps.Deps) {
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             3,
		RefillPerIPPerMin: 6,
		MaxEntries:        4096,
		SweepInterval:     time.Minute,
		IdleTTL:           15 * time.Minute,
	}))

	limited.Get("/api/backup/export", handlers.Export(d))
	limited.Post("/api/backup/import", handlers.Import(d))
}
