package services

import (
	"fmt"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driven"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyArtifactsDir      = "artifacts.dir"
	keyModelFile         = "artifacts.model_file"
	keyEncodersFile      = "artifacts.encoders_file"
	keyFeaturesFile      = "artifacts.features_file"
	keyBundle            = "artifacts.bundle"
	keyLowYieldThreshold = "display.low_yield_threshold"
	keyLogLevel          = "log.level"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling unset keys with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Artifacts: domain.ArtifactSettings{
			Dir:          s.getString(keyArtifactsDir, defaults.Artifacts.Dir),
			ModelFile:    s.getString(keyModelFile, defaults.Artifacts.ModelFile),
			EncodersFile: s.getString(keyEncodersFile, defaults.Artifacts.EncodersFile),
			FeaturesFile: s.getString(keyFeaturesFile, defaults.Artifacts.FeaturesFile),
			Bundle:       s.configStore.GetString(keyBundle), // No default - files are used unless set
		},
		Display: domain.DisplaySettings{
			LowYieldThreshold: s.getFloat(keyLowYieldThreshold, defaults.Display.LowYieldThreshold),
		},
		Log: domain.LogSettings{
			Level: s.getLogLevel(defaults.Log.Level),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyArtifactsDir, settings.Artifacts.Dir},
		{keyModelFile, settings.Artifacts.ModelFile},
		{keyEncodersFile, settings.Artifacts.EncodersFile},
		{keyFeaturesFile, settings.Artifacts.FeaturesFile},
		{keyBundle, settings.Artifacts.Bundle},
		{keyLowYieldThreshold, settings.Display.LowYieldThreshold},
		{keyLogLevel, settings.Log.Level.String()},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// SetArtifactDir updates the directory the artifact files are read from.
func (s *SettingsService) SetArtifactDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: artifact directory must not be empty", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Artifacts.Dir = dir
	return s.Save(settings)
}

// SetBundle selects a SQLite artifact bundle. An empty path returns to files.
func (s *SettingsService) SetBundle(path string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Artifacts.Bundle = path
	return s.Save(settings)
}

// SetLowYieldThreshold updates the low-yield advisory threshold.
func (s *SettingsService) SetLowYieldThreshold(threshold float64) error {
	if threshold < 0 {
		return fmt.Errorf("%w: low yield threshold must not be negative", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Display.LowYieldThreshold = threshold
	return s.Save(settings)
}

// SetLogLevel updates the log level.
func (s *SettingsService) SetLogLevel(level domain.LogLevel) error {
	if !level.IsValid() {
		return fmt.Errorf("%w: log level %q", domain.ErrInvalidInput, level)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Log.Level = level
	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getLogLevel(defaultVal domain.LogLevel) domain.LogLevel {
	val := s.configStore.GetString(keyLogLevel)
	if val == "" {
		return defaultVal
	}
	level, err := domain.ParseLogLevel(val)
	if err != nil {
		return defaultVal
	}
	return level
}
