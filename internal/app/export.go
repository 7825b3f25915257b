package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"weighttrack/internal/domain"
)

// ExportVersion is the interchange schema version written by Serialize.
const ExportVersion = "1.0.0"

var (
	// ErrMalformedPayload is returned when import text is not valid JSON.
	ErrMalformedPayload = errors.New("payload is not valid JSON")

	// ErrMissingField is returned when a required top-level field is absent
	// or has the wrong shape.
	ErrMissingField = errors.New("payload is missing a required field")
)

// InvalidEntryError reports the first imported entry that failed validation.
type InvalidEntryError struct {
	Index int
	Field string
	Value string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid %s in entry %d: %s", e.Field, e.Index, e.Value)
}

// ExportSnapshot is the interchange payload for backup and restore. It is
// independent of the durable storage schema.
type ExportSnapshot struct {
	Entries    []domain.WeightEntry `json:"entries"`
	Settings   domain.AppSettings   `json:"settings"`
	ExportDate time.Time            `json:"exportDate"`
	Version    string               `json:"version"`
}

// Serialize wraps entries and settings with the current timestamp and the
// fixed version tag. Inputs are assumed valid; they came from the store.
func Serialize(entries []domain.WeightEntry, settings domain.AppSettings) ExportSnapshot {
	return ExportSnapshot{
		Entries:    entries,
		Settings:   settings,
		ExportDate: time.Now(),
		Version:    ExportVersion,
	}
}

// Deserialize parses an interchange payload and validates every entry.
// Missing version and exportDate fields are defaulted so snapshots from
// earlier schema versions still import; no other migration is attempted.
func Deserialize(data []byte) (*ExportSnapshot, error) {
	var raw struct {
		Entries    json.RawMessage `json:"entries"`
		Settings   json.RawMessage `json:"settings"`
		ExportDate *time.Time      `json:"exportDate"`
		Version    string          `json:"version"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var entries []domain.WeightEntry
	if raw.Entries == nil || json.Unmarshal(raw.Entries, &entries) != nil {
		return nil, fmt.Errorf("%w: entries must be an array", ErrMissingField)
	}

	var settings domain.AppSettings
	if raw.Settings == nil || json.Unmarshal(raw.Settings, &settings) != nil {
		return nil, fmt.Errorf("%w: settings must be an object", ErrMissingField)
	}

	for i, e := range entries {
		if e.Date == "" || !domain.ValidateDate(e.Date) {
			return nil, &InvalidEntryError{Index: i, Field: "date", Value: e.Date}
		}
		if e.Weight == 0 || !domain.ValidateWeight(e.Weight) {
			return nil, &InvalidEntryError{Index: i, Field: "weight", Value: fmt.Sprintf("%v", e.Weight)}
		}
	}

	snap := &ExportSnapshot{
		Entries:    entries,
		Settings:   settings,
		ExportDate: time.Now(),
		Version:    raw.Version,
	}
	if raw.ExportDate != nil {
		snap.ExportDate = *raw.ExportDate
	}
	if snap.Version == "" {
		snap.Version = ExportVersion
	}
	return snap, nil
}

// ExportData reads all stored entries and the current settings and wraps
// them into an interchange snapshot.
func (s *Store) ExportData(ctx context.Context) (ExportSnapshot, error) {
	entries, err := s.entryRepo.List(ctx)
	if err != nil {
		return ExportSnapshot{}, s.fail("export data", err)
	}
	return Serialize(entries, s.Snapshot().Settings), nil
}

// ImportData restores entries and settings from an interchange payload.
// The whole batch is validated first, including duplicate dates within the
// payload and collisions with already-stored entries, so a failing import
// writes nothing. Returns the number of entries written.
func (s *Store) ImportData(ctx context.Context, data []byte) (int, error) {
	snap, err := Deserialize(data)
	if err != nil {
		return 0, s.fail("import data", err)
	}

	s.begin()
	existing, err := s.entryRepo.List(ctx)
	if err != nil {
		return 0, s.fail("import data", err)
	}
	taken := make(map[string]bool, len(existing))
	for _, e := range existing {
		taken[e.Date] = true
	}
	for _, e := range snap.Entries {
		if taken[e.Date] {
			return 0, s.fail("import data", fmt.Errorf("%w: %s", domain.ErrDuplicateDate, e.Date))
		}
		taken[e.Date] = true
	}

	now := time.Now()
	for _, e := range snap.Entries {
		entry := e
		entry.ID = 0
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
		entry.UpdatedAt = now
		if _, err := s.entryRepo.Add(ctx, entry); err != nil {
			return 0, s.fail("import data", err)
		}
	}

	update := domain.SettingsUpdate{}
	if snap.Settings.Unit.Valid() {
		unit := snap.Settings.Unit
		update.Unit = &unit
	}
	if domain.ValidTheme(snap.Settings.Theme) {
		theme := snap.Settings.Theme
		update.Theme = &theme
	}
	if err := s.UpdateSettings(ctx, update); err != nil {
		return 0, err
	}

	if err := s.LoadEntries(ctx); err != nil {
		return 0, err
	}
	return len(snap.Entries), nil
}
