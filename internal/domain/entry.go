// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"
)

// DayFormat is the canonical calendar-day layout for entry dates.
// Lexicographic comparison of dates in this form matches chronological order.
const DayFormat = "2006-01-02"

var (
	// ErrDuplicateDate is returned when an entry already exists for a date.
	ErrDuplicateDate = errors.New("an entry for this date already exists")

	// ErrEntryNotFound is returned for operations on a missing entry id.
	ErrEntryNotFound = errors.New("entry not found")
)

// WeightEntry represents a single dated weight measurement. Weight is always
// stored in kilograms; display-unit conversion happens on read-out only.
type WeightEntry struct {
	ID        int64     `json:"id" db:"id"`
	Date      string    `json:"date" db:"date"`
	Weight    float64   `json:"weight" db:"weight"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// EntryUpdate is a partial update applied to a stored entry. Nil fields are
// left unchanged.
type EntryUpdate struct {
	Date      *string
	Weight    *float64
	UpdatedAt time.Time
}

// EntryRepository is the port for weight entry persistence. Implementations
// must enforce that no two entries share a date.
type EntryRepository interface {
	Add(ctx context.Context, entry WeightEntry) (int64, error)
	Get(ctx context.Context, id int64) (*WeightEntry, error)
	Update(ctx context.Context, id int64, update EntryUpdate) error
	Delete(ctx context.Context, id int64) error

	// List returns all entries ordered by date descending.
	List(ctx context.Context) ([]WeightEntry, error)

	// Range returns entries with from <= date <= to, ordered by date ascending.
	Range(ctx context.Context, from, to string) ([]WeightEntry, error)

	Clear(ctx context.Context) error
}
