package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"weighttrack/internal/domain"
)

// Add inserts a new entry and returns its assigned id. A second entry for an
// existing date fails with domain.ErrDuplicateDate.
func (d *DB) Add(ctx context.Context, e domain.WeightEntry) (int64, error) {
	res, err := d.sql.ExecContext(ctx,
		`INSERT INTO weight_entries (date, weight, created_at, updated_at) VALUES (?, ?, ?, ?);`,
		e.Date, e.Weight, e.CreatedAt.UTC(), e.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", domain.ErrDuplicateDate, e.Date)
		}
		return 0, err
	}
	return res.LastInsertId()
}

// Get returns the entry with the given id.
func (d *DB) Get(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	var e domain.WeightEntry
	err := d.sql.GetContext(ctx, &e,
		`SELECT id, date, weight, created_at, updated_at FROM weight_entries WHERE id = ?;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Update applies a partial merge to the entry with the given id. Moving an
// entry onto an occupied date fails with domain.ErrDuplicateDate.
func (d *DB) Update(ctx context.Context, id int64, u domain.EntryUpdate) error {
	sets := []string{"updated_at = ?"}
	args := []any{u.UpdatedAt.UTC()}
	if u.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *u.Date)
	}
	if u.Weight != nil {
		sets = append(sets, "weight = ?")
		args = append(args, *u.Weight)
	}
	args = append(args, id)

	res, err := d.sql.ExecContext(ctx,
		`UPDATE weight_entries SET `+strings.Join(sets, ", ")+` WHERE id = ?;`, args...)
	if err != nil {
		if u.Date != nil && isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateDate, *u.Date)
		}
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// Delete removes the entry with the given id.
func (d *DB) Delete(ctx context.Context, id int64) error {
	res, err := d.sql.ExecContext(ctx, `DELETE FROM weight_entries WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// List returns all entries ordered by date descending.
func (d *DB) List(ctx context.Context) ([]domain.WeightEntry, error) {
	entries := []domain.WeightEntry{}
	err := d.sql.SelectContext(ctx, &entries,
		`SELECT id, date, weight, created_at, updated_at FROM weight_entries ORDER BY date DESC;`)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Range returns entries between two dates inclusive, ordered by date ascending.
func (d *DB) Range(ctx context.Context, from, to string) ([]domain.WeightEntry, error) {
	entries := []domain.WeightEntry{}
	err := d.sql.SelectContext(ctx, &entries,
		`SELECT id, date, weight, created_at, updated_at FROM weight_entries
		 WHERE date >= ? AND date <= ? ORDER BY date ASC;`, from, to)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Clear removes all entries.
func (d *DB) Clear(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, `DELETE FROM weight_entries;`)
	return err
}
