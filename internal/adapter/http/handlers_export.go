package adapthttp

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

// maxImportSize caps import payloads; a decade of daily entries is well
// under a megabyte.
const maxImportSize = 10 << 20

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.ExportData(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("weighttrack-export-%s.json", time.Now().Format(domain.DayFormat))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	n, err := s.store.ImportData(r.Context(), data)
	if err != nil {
		var invalid *app.InvalidEntryError
		switch {
		case errors.Is(err, app.ErrMalformedPayload),
			errors.Is(err, app.ErrMissingField),
			errors.As(err, &invalid):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, domain.ErrDuplicateDate):
			writeError(w, http.StatusConflict, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": n})
}
