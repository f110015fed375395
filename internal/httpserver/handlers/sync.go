package handlers

import (
	"net/http"

	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
)

type syncResponse struct {
	Triggered bool   `json:"triggered"`
	LastError string `json:"lastError,omitempty"`
}

// TriggerSync requests an out-of-band reconciliation pass between the
// two stores.
func TriggerSync(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.SyncTrigger <- struct{}{}:
			d.Logger.Info("manual sync triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, syncResponse{Triggered: true})
		default:
			d.Logger.Warn("sync already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, syncResponse{
				Triggered: false,
				LastError: d.Syncer.LastError(),
			})
		}
	}
}

// SyncStatus reports the current error slot of the sync facade.
func SyncStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, syncResponse{
			Triggered: false,
			LastError: d.Syncer.LastError(),
		})
	}
}
