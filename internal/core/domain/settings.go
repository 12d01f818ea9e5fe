package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const unknownDescription = "Unknown"

// LogLevel controls how much the logger prints.
type LogLevel string

// Available log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// IsValid returns true if the log level is recognised.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l LogLevel) String() string {
	return string(l)
}

// Description returns a human-readable description of the level.
func (l LogLevel) Description() string {
	switch l {
	case LogLevelDebug:
		return "Debug (substitutions and timings)"
	case LogLevelInfo:
		return "Info"
	case LogLevelWarn:
		return "Warnings only"
	case LogLevelError:
		return "Errors only"
	default:
		return unknownDescription
	}
}

// ParseLogLevel normalises s to a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	l := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", fmt.Errorf("%w: log level %q", ErrInvalidInput, s)
	}
	return l, nil
}

// ArtifactSettings locates the training artifacts.
type ArtifactSettings struct {
	// Dir is the directory holding the artifact files.
	Dir string

	// ModelFile is the LightGBM text model, relative to Dir.
	ModelFile string

	// EncodersFile is the label encoder table (JSON or YAML), relative to Dir.
	EncodersFile string

	// FeaturesFile is the ordered feature list (JSON or YAML), relative to Dir.
	FeaturesFile string

	// Bundle is an optional SQLite bundle holding all three artifacts.
	// When set it takes precedence over the individual files.
	Bundle string
}

// ModelPath returns the model file path.
func (a ArtifactSettings) ModelPath() string {
	return a.resolve(a.ModelFile)
}

// EncodersPath returns the encoders file path.
func (a ArtifactSettings) EncodersPath() string {
	return a.resolve(a.EncodersFile)
}

// FeaturesPath returns the features file path.
func (a ArtifactSettings) FeaturesPath() string {
	return a.resolve(a.FeaturesFile)
}

// UsesBundle returns true if artifacts come from a SQLite bundle.
func (a ArtifactSettings) UsesBundle() bool {
	return a.Bundle != ""
}

func (a ArtifactSettings) resolve(name string) string {
	if filepath.IsAbs(name) || a.Dir == "" {
		return name
	}
	return filepath.Join(a.Dir, name)
}

// DisplaySettings holds result presentation options.
type DisplaySettings struct {
	// LowYieldThreshold is the yield below which the low-yield advisory is shown.
	LowYieldThreshold float64
}

// LogSettings holds logging configuration.
type LogSettings struct {
	// Level is the minimum level printed.
	Level LogLevel
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	Artifacts ArtifactSettings
	Display   DisplaySettings
	Log       LogSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Artifacts: ArtifactSettings{
			Dir:          "models",
			ModelFile:    "lgbm_model.txt",
			EncodersFile: "label_encoders.json",
			FeaturesFile: "features_list.json",
		},
		Display: DisplaySettings{
			LowYieldThreshold: DefaultLowYieldThreshold,
		},
		Log: LogSettings{
			Level: LogLevelInfo,
		},
	}
}

// Validate checks the settings for values that would make loading impossible.
func (s *AppSettings) Validate() error {
	if !s.Artifacts.UsesBundle() {
		if s.Artifacts.ModelFile == "" {
			return fmt.Errorf("%w: model file not set", ErrInvalidInput)
		}
		if s.Artifacts.EncodersFile == "" {
			return fmt.Errorf("%w: encoders file not set", ErrInvalidInput)
		}
		if s.Artifacts.FeaturesFile == "" {
			return fmt.Errorf("%w: features file not set", ErrInvalidInput)
		}
	}
	if s.Display.LowYieldThreshold < 0 {
		return fmt.Errorf("%w: low yield threshold must not be negative", ErrInvalidInput)
	}
	if !s.Log.Level.IsValid() {
		return fmt.Errorf("%w: log level %q", ErrInvalidInput, s.Log.Level)
	}
	return nil
}
