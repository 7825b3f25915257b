// Package app contains the application services that orchestrate domain
// logic over the persistence ports.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"weighttrack/internal/domain"
)

// rollingWindow is the number of trailing entries averaged for trend data.
const rollingWindow = 7

// Snapshot is the consistent in-memory state exposed to presentation layers.
type Snapshot struct {
	Entries  []domain.WeightEntry `json:"entries"`
	Settings domain.AppSettings   `json:"settings"`
	Loading  bool                 `json:"loading"`
	Error    string               `json:"error,omitempty"`
}

// Store is the application state coordinator. It owns the authoritative
// in-memory snapshot, delegates durable writes to the repositories, and
// reloads the snapshot after each mutation. Construct one instance per
// running process; tests construct their own.
type Store struct {
	entryRepo    domain.EntryRepository
	settingsRepo domain.SettingsRepository

	mu       sync.Mutex
	entries  []domain.WeightEntry
	settings domain.AppSettings
	loading  bool
	errMsg   string
}

// NewStore creates a Store backed by the given repositories.
func NewStore(entries domain.EntryRepository, settings domain.SettingsRepository) *Store {
	return &Store{
		entryRepo:    entries,
		settingsRepo: settings,
		entries:      []domain.WeightEntry{},
		settings:     domain.AppSettings{Unit: domain.DefaultUnit, Theme: domain.DefaultTheme},
	}
}

// Snapshot returns a copy of the current state. The entries slice is copied
// so callers can never observe a partially applied mutation.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.WeightEntry, len(s.entries))
	copy(entries, s.entries)
	return Snapshot{Entries: entries, Settings: s.settings, Loading: s.loading, Error: s.errMsg}
}

// begin marks a mutating operation as in flight and clears any stale error.
func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
}

// fail records err on the snapshot, clears loading, and returns err so
// callers can react programmatically.
func (s *Store) fail(op string, err error) error {
	s.mu.Lock()
	s.errMsg = fmt.Sprintf("failed to %s: %v", op, err)
	s.loading = false
	s.mu.Unlock()
	slog.Error("store operation failed", "op", op, "error", err)
	return err
}

// LoadEntries replaces the snapshot's entries with all stored entries,
// ordered by date descending. Always safe to retry.
func (s *Store) LoadEntries(ctx context.Context) error {
	s.begin()
	entries, err := s.entryRepo.List(ctx)
	if err != nil {
		return s.fail("load entries", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.loading = false
	s.mu.Unlock()
	return nil
}

// AddEntry validates presence of both fields, stamps timestamps, persists,
// and reloads the snapshot. Full validation (ValidateDate, ValidateWeight)
// is the caller's responsibility before invoking this; only presence is
// checked here. A duplicate date surfaces domain.ErrDuplicateDate; callers
// resolve that by switching to UpdateEntry.
func (s *Store) AddEntry(ctx context.Context, date string, weightKg float64) error {
	s.begin()
	if date == "" || weightKg == 0 {
		return s.fail("add entry", fmt.Errorf("date and weight are required"))
	}

	now := time.Now()
	entry := domain.WeightEntry{Date: date, Weight: weightKg, CreatedAt: now, UpdatedAt: now}
	if _, err := s.entryRepo.Add(ctx, entry); err != nil {
		return s.fail("add entry", err)
	}
	return s.LoadEntries(ctx)
}

// UpdateEntry stamps updatedAt, applies a partial merge, and reloads.
func (s *Store) UpdateEntry(ctx context.Context, id int64, update domain.EntryUpdate) error {
	s.begin()
	update.UpdatedAt = time.Now()
	if err := s.entryRepo.Update(ctx, id, update); err != nil {
		return s.fail("update entry", err)
	}
	return s.LoadEntries(ctx)
}

// DeleteEntry removes one entry and reloads.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	s.begin()
	if err := s.entryRepo.Delete(ctx, id); err != nil {
		return s.fail("delete entry", err)
	}
	return s.LoadEntries(ctx)
}

// ClearAllEntries empties the entries table. No reload is needed; the
// snapshot is set to empty directly.
func (s *Store) ClearAllEntries(ctx context.Context) error {
	s.begin()
	if err := s.entryRepo.Clear(ctx); err != nil {
		return s.fail("clear entries", err)
	}

	s.mu.Lock()
	s.entries = []domain.WeightEntry{}
	s.loading = false
	s.mu.Unlock()
	return nil
}

// EntriesBetween returns stored entries with from <= date <= to, ascending.
// It reads through to the store and does not touch the snapshot.
func (s *Store) EntriesBetween(ctx context.Context, from, to string) ([]domain.WeightEntry, error) {
	return s.entryRepo.Range(ctx, from, to)
}

// LoadSettings reads the unit and theme keys, defaulting absent values.
func (s *Store) LoadSettings(ctx context.Context) error {
	unit, ok, err := s.settingsRepo.Get(ctx, domain.SettingUnit)
	if err != nil {
		return s.fail("load settings", err)
	}
	if !ok {
		unit = string(domain.DefaultUnit)
	}

	theme, ok, err := s.settingsRepo.Get(ctx, domain.SettingTheme)
	if err != nil {
		return s.fail("load settings", err)
	}
	if !ok {
		theme = domain.DefaultTheme
	}

	s.mu.Lock()
	s.settings = domain.AppSettings{Unit: domain.Unit(unit), Theme: theme}
	s.mu.Unlock()
	return nil
}

// UpdateSettings merges the partial update into the in-memory settings
// optimistically and persists each changed key.
func (s *Store) UpdateSettings(ctx context.Context, update domain.SettingsUpdate) error {
	if update.Unit != nil && !update.Unit.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidUnit, *update.Unit)
	}
	if update.Theme != nil && !domain.ValidTheme(*update.Theme) {
		return fmt.Errorf("invalid theme: %q", *update.Theme)
	}

	s.mu.Lock()
	if update.Unit != nil {
		s.settings.Unit = *update.Unit
	}
	if update.Theme != nil {
		s.settings.Theme = *update.Theme
	}
	s.mu.Unlock()

	if update.Unit != nil {
		if err := s.settingsRepo.Put(ctx, domain.SettingUnit, string(*update.Unit)); err != nil {
			return s.fail("save settings", err)
		}
	}
	if update.Theme != nil {
		if err := s.settingsRepo.Put(ctx, domain.SettingTheme, *update.Theme); err != nil {
			return s.fail("save settings", err)
		}
	}
	return nil
}

// RollingAverages computes the 7-entry rolling average series over the
// current snapshot. The values are already rounded; do not round again.
func (s *Store) RollingAverages() []domain.RollingAveragePoint {
	return domain.RollingAverages(s.Snapshot().Entries, rollingWindow)
}

// EntriesInUserUnit returns the snapshot's entries with weights converted
// from kilograms to the configured display unit. Stored values stay in
// kilograms regardless.
func (s *Store) EntriesInUserUnit() ([]domain.WeightEntry, error) {
	snap := s.Snapshot()
	for i := range snap.Entries {
		w, err := domain.ConvertWeight(snap.Entries[i].Weight, domain.UnitKg, snap.Settings.Unit)
		if err != nil {
			return nil, err
		}
		snap.Entries[i].Weight = w
	}
	return snap.Entries, nil
}

// ClearError resets the snapshot's error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}
