package driving

import "github.com/custodia-labs/juris/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults filled in.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses value for a single setting key and persists it.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string

	// Unknown returns stored keys that match no setting.
	Unknown() []string
}
