package handlers

import (
	"io"
	"net/http"

	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
	"github.com/ecocycle-dz/ecocycle/internal/utils"
)

const maxImportBody = 32 << 20 // 32 MiB

// Export serves the full backup document as a downloadable file
// named with the current date.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, filename, ok := d.Syncer.Export(r.Context())
		if !ok {
			writeError(w, http.StatusInternalServerError, d.Syncer.LastError())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if _, err := w.Write(data); err != nil {
			d.Logger.Debug("failed to write export", logger.Error(err))
		}
	}
}

type importResponse struct {
	Imported bool `json:"imported"`
}

// Import loads a backup document into the durable store and syncs
// the imported records into memory. Rejected documents leave both
// stores untouched.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBody))
		if err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, "import document too large")
			return
		}

		if !d.Syncer.Import(r.Context(), data) {
			writeError(w, http.StatusBadRequest, d.Syncer.LastError())
			return
		}

		writeJSON(w, http.StatusOK, importResponse{Imported: true})
	}
}
