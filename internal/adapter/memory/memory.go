// Package memory implements an in-memory store for development and testing.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"weighttrack/internal/domain"
)

// DB implements the domain repository ports without durable storage. It
// enforces the same date-uniqueness constraint as the SQLite adapter.
type DB struct {
	mu       sync.Mutex
	entries  []domain.WeightEntry
	settings map[string]string

	entryIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		settings: make(map[string]string),
	}
}

// Ensure interfaces are met.
var _ domain.EntryRepository = (*DB)(nil)
var _ domain.SettingsRepository = (*SettingsRepo)(nil)

// --- EntryRepository ---

// Add appends an entry, rejecting duplicate dates.
func (db *DB) Add(ctx context.Context, e domain.WeightEntry) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.entries {
		if existing.Date == e.Date {
			return 0, fmt.Errorf("%w: %s", domain.ErrDuplicateDate, e.Date)
		}
	}

	db.entryIDCounter++
	e.ID = db.entryIDCounter
	db.entries = append(db.entries, e)
	return e.ID, nil
}

// Get returns a copy of the entry with the given id.
func (db *DB) Get(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.entries {
		if db.entries[i].ID == id {
			ret := db.entries[i]
			return &ret, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

// Update applies a partial merge to the entry with the given id.
func (db *DB) Update(ctx context.Context, id int64, u domain.EntryUpdate) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx := -1
	for i := range db.entries {
		if db.entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.ErrEntryNotFound
	}

	if u.Date != nil && *u.Date != db.entries[idx].Date {
		for _, existing := range db.entries {
			if existing.Date == *u.Date {
				return fmt.Errorf("%w: %s", domain.ErrDuplicateDate, *u.Date)
			}
		}
		db.entries[idx].Date = *u.Date
	}
	if u.Weight != nil {
		db.entries[idx].Weight = *u.Weight
	}
	db.entries[idx].UpdatedAt = u.UpdatedAt
	return nil
}

// Delete removes the entry with the given id.
func (db *DB) Delete(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.entries {
		if db.entries[i].ID == id {
			db.entries = append(db.entries[:i], db.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

// List returns all entries ordered by date descending.
func (db *DB) List(ctx context.Context) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightEntry, len(db.entries))
	copy(result, db.entries)
	sort.Slice(result, func(i, j int) bool { return result[i].Date > result[j].Date })
	return result, nil
}

// Range returns entries between two dates inclusive, ordered ascending.
func (db *DB) Range(ctx context.Context, from, to string) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightEntry, 0)
	for _, e := range db.entries {
		if e.Date >= from && e.Date <= to {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

// Clear removes all entries.
func (db *DB) Clear(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.entries = nil
	return nil
}

// --- SettingsRepository ---

// SettingsRepo implements settings persistence on top of DB.
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a settings repository sharing the DB state.
func (db *DB) NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the value for key and whether it exists.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	v, ok := r.db.settings[key]
	return v, ok, nil
}

// Put inserts or replaces the value for key.
func (r *SettingsRepo) Put(ctx context.Context, key, value string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.settings[key] = value
	return nil
}
