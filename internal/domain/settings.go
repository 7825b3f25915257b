package domain

import "context"

// Reserved settings keys.
const (
	SettingUnit  = "unit"
	SettingTheme = "theme"
)

// Supported theme values.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Defaults applied when a key is absent from the store.
const (
	DefaultUnit  = UnitKg
	DefaultTheme = ThemeLight
)

// AppSettings is the materialized view of the settings table.
type AppSettings struct {
	Unit  Unit   `json:"unit"`
	Theme string `json:"theme"`
}

// SettingsUpdate is a partial settings change; nil fields are left untouched.
type SettingsUpdate struct {
	Unit  *Unit
	Theme *string
}

// ValidTheme reports whether s is a supported theme value.
func ValidTheme(s string) bool {
	return s == ThemeLight || s == ThemeDark || s == ThemeSystem
}

// SettingsRepository is the port for the key-value settings table.
// Put is an upsert; Get reports absence via its second return value.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}
