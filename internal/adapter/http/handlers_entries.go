package adapthttp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"weighttrack/internal/domain"
)

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.store.LoadEntries(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	switch unit := r.URL.Query().Get("unit"); unit {
	case "", string(domain.UnitKg):
		writeJSON(w, http.StatusOK, map[string]any{"entries": s.store.Snapshot().Entries})
	case "user":
		entries, err := s.store.EntriesInUserUnit()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
	default:
		entries := s.store.Snapshot().Entries
		for i := range entries {
			v, err := domain.ConvertWeight(entries[i].Weight, domain.UnitKg, domain.Unit(unit))
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			entries[i].Weight = v
		}
		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
	}
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date   string  `json:"date"`
		Weight float64 `json:"weight"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// The form layer owns full validation before the coordinator is called.
	if !domain.ValidateDate(body.Date) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid date: %q", body.Date))
		return
	}
	if !domain.ValidateWeight(body.Weight) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid weight: %v", body.Weight))
		return
	}

	if err := s.store.AddEntry(r.Context(), body.Date, body.Weight); err != nil {
		if errors.Is(err, domain.ErrDuplicateDate) {
			// Clients resolve this by updating the existing entry instead.
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	for _, e := range s.store.Snapshot().Entries {
		if e.Date == body.Date {
			writeJSON(w, http.StatusCreated, map[string]any{"entry": e})
			return
		}
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	var body struct {
		Date   *string  `json:"date"`
		Weight *float64 `json:"weight"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Date == nil && body.Weight == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("nothing to update"))
		return
	}
	if body.Date != nil && !domain.ValidateDate(*body.Date) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid date: %q", *body.Date))
		return
	}
	if body.Weight != nil && !domain.ValidateWeight(*body.Weight) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid weight: %v", *body.Weight))
		return
	}

	update := domain.EntryUpdate{Date: body.Date, Weight: body.Weight}
	if err := s.store.UpdateEntry(r.Context(), id, update); err != nil {
		switch {
		case errors.Is(err, domain.ErrEntryNotFound):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, domain.ErrDuplicateDate):
			writeError(w, http.StatusConflict, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	if err := s.store.DeleteEntry(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleClearEntries(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearAllEntries(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleEntriesRange(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if !domain.ValidateDate(from) || !domain.ValidateDate(to) || from > to {
		writeError(w, http.StatusBadRequest, fmt.Errorf("from and to must be valid dates with from <= to"))
		return
	}

	entries, err := s.store.EntriesBetween(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleAverages(w http.ResponseWriter, r *http.Request) {
	if err := s.store.LoadEntries(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if raw := r.URL.Query().Get("window"); raw != "" {
		window, err := strconv.Atoi(raw)
		if err != nil || window < 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("window must be a positive integer"))
			return
		}
		averages := domain.RollingAverages(s.store.Snapshot().Entries, window)
		writeJSON(w, http.StatusOK, map[string]any{"averages": averages})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"averages": s.store.RollingAverages()})
}
