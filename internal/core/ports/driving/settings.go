package driving

import "github.com/custodia-labs/yieldcast/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetArtifactDir updates the artifact directory.
	SetArtifactDir(dir string) error

	// SetBundle selects a SQLite artifact bundle, or clears it with "".
	SetBundle(path string) error

	// SetLowYieldThreshold updates the low-yield advisory threshold.
	SetLowYieldThreshold(threshold float64) error

	// SetLogLevel updates the log level.
	SetLogLevel(level domain.LogLevel) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
