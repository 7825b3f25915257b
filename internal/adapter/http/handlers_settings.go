package adapthttp

import (
	"errors"
	"fmt"
	"net/http"

	"weighttrack/internal/domain"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	if err := s.store.LoadSettings(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": s.store.Snapshot().Settings})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Unit  *domain.Unit `json:"unit"`
		Theme *string      `json:"theme"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Unit == nil && body.Theme == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("nothing to update"))
		return
	}

	update := domain.SettingsUpdate{Unit: body.Unit, Theme: body.Theme}
	if err := s.store.UpdateSettings(r.Context(), update); err != nil {
		if errors.Is(err, domain.ErrInvalidUnit) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		// Invalid theme is also a caller error; storage failures are not.
		if body.Theme != nil && !domain.ValidTheme(*body.Theme) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": s.store.Snapshot().Settings})
}
