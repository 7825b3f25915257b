package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"weighttrack/internal/domain"
)

// SettingsRepo implements the settings key-value port on top of DB.
type SettingsRepo struct {
	db *DB
}

var _ domain.SettingsRepository = (*SettingsRepo)(nil)

// NewSettingsRepo creates a settings repository sharing the DB connection.
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the value for key; the second return value is false when the
// key has never been written.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.sql.GetContext(ctx, &value, `SELECT value FROM settings WHERE key = ?;`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Put inserts or replaces the value for key.
func (r *SettingsRepo) Put(ctx context.Context, key, value string) error {
	_, err := r.db.sql.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, key, value)
	return err
}
