package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"weighttrack/internal/adapter/memory"
	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

func newTestStore() (*app.Store, *memory.DB) {
	db := memory.New()
	return app.NewStore(db, db.NewSettingsRepo()), db
}

func seedEntries(t *testing.T, s *app.Store, days map[string]float64) {
	t.Helper()
	for day, weight := range days {
		if err := s.AddEntry(context.Background(), day, weight); err != nil {
			t.Fatalf("seed %s: %v", day, err)
		}
	}
}

// failingEntryRepo returns a fixed error from every operation.
type failingEntryRepo struct {
	err error
}

func (r *failingEntryRepo) Add(context.Context, domain.WeightEntry) (int64, error) {
	return 0, r.err
}
func (r *failingEntryRepo) Get(context.Context, int64) (*domain.WeightEntry, error) {
	return nil, r.err
}
func (r *failingEntryRepo) Update(context.Context, int64, domain.EntryUpdate) error { return r.err }
func (r *failingEntryRepo) Delete(context.Context, int64) error                     { return r.err }
func (r *failingEntryRepo) List(context.Context) ([]domain.WeightEntry, error)      { return nil, r.err }
func (r *failingEntryRepo) Range(context.Context, string, string) ([]domain.WeightEntry, error) {
	return nil, r.err
}
func (r *failingEntryRepo) Clear(context.Context) error { return r.err }

func TestLoadEntries_OrdersByDateDescending(t *testing.T) {
	s, _ := newTestStore()
	seedEntries(t, s, map[string]float64{
		"2024-01-14": 70.1,
		"2024-01-16": 70.3,
		"2024-01-15": 70.2,
	})

	if err := s.LoadEntries(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	snap := s.Snapshot()
	if snap.Loading {
		t.Error("loading flag not cleared")
	}
	want := []string{"2024-01-16", "2024-01-15", "2024-01-14"}
	if len(snap.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(snap.Entries))
	}
	for i, day := range want {
		if snap.Entries[i].Date != day {
			t.Errorf("entries[%d].Date = %q; want %q", i, snap.Entries[i].Date, day)
		}
	}
}

func TestLoadEntries_FailureRecordsErrorAndClearsLoading(t *testing.T) {
	db := memory.New()
	s := app.NewStore(&failingEntryRepo{err: errors.New("disk gone")}, db.NewSettingsRepo())

	if err := s.LoadEntries(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	snap := s.Snapshot()
	if snap.Loading {
		t.Error("loading flag stuck after failure")
	}
	if snap.Error == "" {
		t.Error("expected error message on snapshot")
	}
}

func TestAddEntry_PresenceChecks(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		weight float64
	}{
		{"missing date", "", 70},
		{"zero weight", "2024-01-15", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, db := newTestStore()
			if err := s.AddEntry(context.Background(), tc.date, tc.weight); err == nil {
				t.Fatal("expected error")
			}
			entries, _ := db.List(context.Background())
			if len(entries) != 0 {
				t.Errorf("entry persisted despite failed presence check")
			}
		})
	}
}

func TestAddEntry_RefreshesSnapshot(t *testing.T) {
	s, _ := newTestStore()
	if err := s.AddEntry(context.Background(), "2024-01-15", 70.5); err != nil {
		t.Fatalf("add: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Entries) != 1 {
		t.Fatalf("expected 1 entry in snapshot, got %d", len(snap.Entries))
	}
	e := snap.Entries[0]
	if e.ID == 0 {
		t.Error("expected store-assigned id")
	}
	if e.CreatedAt.IsZero() || !e.UpdatedAt.Equal(e.CreatedAt) {
		t.Errorf("timestamps not stamped at creation: created=%v updated=%v", e.CreatedAt, e.UpdatedAt)
	}
}

func TestAddEntry_DuplicateDate(t *testing.T) {
	s, db := newTestStore()
	if err := s.AddEntry(context.Background(), "2024-01-15", 70.5); err != nil {
		t.Fatalf("add: %v", err)
	}

	err := s.AddEntry(context.Background(), "2024-01-15", 71.0)
	if !errors.Is(err, domain.ErrDuplicateDate) {
		t.Fatalf("expected ErrDuplicateDate, got %v", err)
	}

	snap := s.Snapshot()
	if snap.Error == "" {
		t.Error("expected error on snapshot")
	}
	if snap.Loading {
		t.Error("loading flag stuck")
	}
	entries, _ := db.List(context.Background())
	if len(entries) != 1 {
		t.Fatalf("entry count changed after failed add: %d", len(entries))
	}
}

func TestUpdateEntry_StampsUpdatedAtAndReloads(t *testing.T) {
	s, _ := newTestStore()
	if err := s.AddEntry(context.Background(), "2024-01-15", 70.5); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := s.Snapshot().Entries[0].ID
	created := s.Snapshot().Entries[0].CreatedAt

	time.Sleep(time.Millisecond)
	weight := 71.2
	if err := s.UpdateEntry(context.Background(), id, domain.EntryUpdate{Weight: &weight}); err != nil {
		t.Fatalf("update: %v", err)
	}

	e := s.Snapshot().Entries[0]
	if e.Weight != 71.2 {
		t.Errorf("weight = %v; want 71.2", e.Weight)
	}
	if !e.UpdatedAt.After(created) {
		t.Errorf("updatedAt %v not refreshed (createdAt %v)", e.UpdatedAt, created)
	}
}

func TestDeleteEntry(t *testing.T) {
	s, _ := newTestStore()
	seedEntries(t, s, map[string]float64{"2024-01-14": 70, "2024-01-15": 71})
	id := s.Snapshot().Entries[0].ID

	if err := s.DeleteEntry(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := len(s.Snapshot().Entries); got != 1 {
		t.Fatalf("expected 1 entry after delete, got %d", got)
	}
}

func TestClearAllEntries(t *testing.T) {
	s, db := newTestStore()
	seedEntries(t, s, map[string]float64{"2024-01-14": 70, "2024-01-15": 71})

	if err := s.ClearAllEntries(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.Entries) != 0 {
		t.Fatalf("snapshot still has %d entries", len(snap.Entries))
	}
	if snap.Loading {
		t.Error("loading flag stuck")
	}
	entries, _ := db.List(context.Background())
	if len(entries) != 0 {
		t.Fatalf("store still has %d entries", len(entries))
	}
}

func TestEntriesBetween(t *testing.T) {
	s, _ := newTestStore()
	seedEntries(t, s, map[string]float64{
		"2024-01-10": 70,
		"2024-01-12": 71,
		"2024-01-14": 72,
	})

	got, err := s.EntriesBetween(context.Background(), "2024-01-10", "2024-01-12")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2024-01-10" || got[1].Date != "2024-01-12" {
		t.Errorf("unexpected range result: %+v", got)
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, _ := newTestStore()
	if err := s.LoadSettings(context.Background()); err != nil {
		t.Fatalf("load settings: %v", err)
	}
	settings := s.Snapshot().Settings
	if settings.Unit != domain.UnitKg || settings.Theme != domain.ThemeLight {
		t.Errorf("defaults = %+v; want unit=kg theme=light", settings)
	}
}

func TestUpdateSettings_PersistsAndMerges(t *testing.T) {
	s, db := newTestStore()
	unit := domain.UnitLb
	if err := s.UpdateSettings(context.Background(), domain.SettingsUpdate{Unit: &unit}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	settings := s.Snapshot().Settings
	if settings.Unit != domain.UnitLb {
		t.Errorf("unit = %q; want lb", settings.Unit)
	}
	if settings.Theme != domain.ThemeLight {
		t.Errorf("theme changed unexpectedly: %q", settings.Theme)
	}

	// Persisted value survives a reload into a fresh coordinator.
	s2 := app.NewStore(db, db.NewSettingsRepo())
	if err := s2.LoadSettings(context.Background()); err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s2.Snapshot().Settings.Unit != domain.UnitLb {
		t.Errorf("persisted unit = %q; want lb", s2.Snapshot().Settings.Unit)
	}
}

func TestUpdateSettings_RejectsInvalidValues(t *testing.T) {
	s, _ := newTestStore()

	badUnit := domain.Unit("stones")
	if err := s.UpdateSettings(context.Background(), domain.SettingsUpdate{Unit: &badUnit}); !errors.Is(err, domain.ErrInvalidUnit) {
		t.Fatalf("expected ErrInvalidUnit, got %v", err)
	}

	badTheme := "sepia"
	if err := s.UpdateSettings(context.Background(), domain.SettingsUpdate{Theme: &badTheme}); err == nil {
		t.Fatal("expected error for invalid theme")
	}

	settings := s.Snapshot().Settings
	if settings.Unit != domain.UnitKg || settings.Theme != domain.ThemeLight {
		t.Errorf("settings mutated by rejected update: %+v", settings)
	}
}

func TestRollingAverages_WindowOfSeven(t *testing.T) {
	s, _ := newTestStore()
	weights := []float64{70.0, 70.2, 70.1, 69.9, 70.3, 70.0, 70.1, 70.2}
	for i, w := range weights {
		day := time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC).Format(domain.DayFormat)
		if err := s.AddEntry(context.Background(), day, w); err != nil {
			t.Fatalf("add %s: %v", day, err)
		}
	}

	points := s.RollingAverages()
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Average != 70.09 {
		t.Errorf("first average = %v; want 70.09", points[0].Average)
	}
}

func TestRollingAverages_InsufficientData(t *testing.T) {
	s, _ := newTestStore()
	seedEntries(t, s, map[string]float64{"2024-01-14": 70, "2024-01-15": 71})

	if points := s.RollingAverages(); len(points) != 0 {
		t.Fatalf("expected empty series for 2 entries, got %d points", len(points))
	}
}

func TestEntriesInUserUnit_LeavesStoredValuesInKg(t *testing.T) {
	s, db := newTestStore()
	if err := s.AddEntry(context.Background(), "2024-01-15", 100); err != nil {
		t.Fatalf("add: %v", err)
	}
	unit := domain.UnitLb
	if err := s.UpdateSettings(context.Background(), domain.SettingsUpdate{Unit: &unit}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	converted, err := s.EntriesInUserUnit()
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if converted[0].Weight < 220 || converted[0].Weight > 221 {
		t.Errorf("converted weight = %v; want ~220.46", converted[0].Weight)
	}

	// The persisted value and the snapshot stay in kilograms.
	stored, _ := db.List(context.Background())
	if stored[0].Weight != 100 {
		t.Errorf("stored weight = %v; want 100 kg", stored[0].Weight)
	}
	if s.Snapshot().Entries[0].Weight != 100 {
		t.Errorf("snapshot weight = %v; want 100 kg", s.Snapshot().Entries[0].Weight)
	}
}

func TestClearError(t *testing.T) {
	db := memory.New()
	s := app.NewStore(&failingEntryRepo{err: errors.New("disk gone")}, db.NewSettingsRepo())

	_ = s.LoadEntries(context.Background())
	if s.Snapshot().Error == "" {
		t.Fatal("expected error on snapshot")
	}
	s.ClearError()
	if s.Snapshot().Error != "" {
		t.Fatal("error not cleared")
	}
}
