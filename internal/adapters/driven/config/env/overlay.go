// Package env overlays YIELDCAST_* environment variables on a config store.
package env

import (
	"fmt"
	"sort"

	goenv "github.com/caarlos0/env/v11"

	"github.com/custodia-labs/yieldcast/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Prefix is prepended to every variable name.
const Prefix = "YIELDCAST_"

// Overrides are the settings that may come from the environment.
type Overrides struct {
	ArtifactsDir      string   `env:"ARTIFACTS_DIR"`
	ModelFile         string   `env:"MODEL_FILE"`
	EncodersFile      string   `env:"ENCODERS_FILE"`
	FeaturesFile      string   `env:"FEATURES_FILE"`
	Bundle            string   `env:"BUNDLE"`
	LowYieldThreshold *float64 `env:"LOW_YIELD_THRESHOLD"`
	LogLevel          string   `env:"LOG_LEVEL"`
}

// ParseOverrides reads overrides from environ, or from the process
// environment when environ is nil.
func ParseOverrides(environ map[string]string) (Overrides, error) {
	var o Overrides
	opts := goenv.Options{Prefix: Prefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := goenv.ParseWithOptions(&o, opts); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// values maps the set overrides to config keys.
func (o Overrides) values() map[string]any {
	out := make(map[string]any)
	set := func(key, v string) {
		if v != "" {
			out[key] = v
		}
	}
	set("artifacts.dir", o.ArtifactsDir)
	set("artifacts.model_file", o.ModelFile)
	set("artifacts.encoders_file", o.EncodersFile)
	set("artifacts.features_file", o.FeaturesFile)
	set("artifacts.bundle", o.Bundle)
	set("log.level", o.LogLevel)
	if o.LowYieldThreshold != nil {
		out["display.low_yield_threshold"] = *o.LowYieldThreshold
	}
	return out
}

// ConfigStore reads environment overrides first and falls back to the
// wrapped store. Writes go to the wrapped store; an override still
// shadows the written value for the rest of the process. Writing back
// the override value itself is a no-op, so a settings round trip never
// copies the environment into the config file.
type ConfigStore struct {
	base      driven.ConfigStore
	overrides map[string]any
}

// NewConfigStore wraps base with the given overrides.
func NewConfigStore(base driven.ConfigStore, o Overrides) *ConfigStore {
	return &ConfigStore{base: base, overrides: o.values()}
}

// Overridden returns true if key is set from the environment.
func (s *ConfigStore) Overridden(key string) bool {
	_, ok := s.overrides[key]
	return ok
}

// OverriddenKeys returns the keys set from the environment, sorted.
func (s *ConfigStore) OverriddenKeys() []string {
	keys := make([]string, 0, len(s.overrides))
	for k := range s.overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	if v, ok := s.overrides[key]; ok {
		return v, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	if v, ok := s.overrides[key].(string); ok {
		return v
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	if v, ok := s.overrides[key].(float64); ok {
		return int(v)
	}
	return s.base.GetInt(key)
}

// GetFloat retrieves a floating point configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	if v, ok := s.overrides[key].(float64); ok {
		return v
	}
	return s.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	return s.base.GetBool(key)
}

// GetStringSlice retrieves a string slice configuration value.
func (s *ConfigStore) GetStringSlice(key string) []string {
	return s.base.GetStringSlice(key)
}

// Set stores a value in the wrapped store.
func (s *ConfigStore) Set(key string, value any) error {
	if v, ok := s.overrides[key]; ok && v == value {
		return nil
	}
	return s.base.Set(key, value)
}

// Save persists the wrapped store.
func (s *ConfigStore) Save() error {
	return s.base.Save()
}

// Load reloads the wrapped store.
func (s *ConfigStore) Load() error {
	return s.base.Load()
}

// Path returns the wrapped store's path.
func (s *ConfigStore) Path() string {
	return s.base.Path()
}
