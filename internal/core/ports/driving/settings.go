package driving

import "github.com/perfecxion/sitesearch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings with defaults and environment overrides applied.
	Get() (*domain.Settings, error)

	// Set validates and persists a single setting by dotted key.
	Set(key, value string) error

	// Keys lists every known setting key in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
