package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/yieldcast/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("artifacts.dir", "/srv/models")
	_ = store.Set("artifacts.bundle", "artifacts.db")
	_ = store.Set("display.low_yield_threshold", int64(250))
	_ = store.Set("log.level", "WARN")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, "/srv/models", settings.Artifacts.Dir)
	assert.Equal(t, "artifacts.db", settings.Artifacts.Bundle)
	assert.Equal(t, "lgbm_model.txt", settings.Artifacts.ModelFile)
	assert.Equal(t, 250.0, settings.Display.LowYieldThreshold)
	assert.Equal(t, domain.LogLevelWarn, settings.Log.Level)
}

func TestSettingsService_Get_ZeroThresholdKept(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("display.low_yield_threshold", 0.0)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, 0.0, settings.Display.LowYieldThreshold)
}

func TestSettingsService_Get_InvalidLevelReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("log.level", "chatty")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.LogLevelInfo, settings.Log.Level)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	want := domain.DefaultAppSettings()
	want.Artifacts.Dir = "artifacts"
	want.Artifacts.ModelFile = "model_v2.txt"
	want.Display.LowYieldThreshold = 75
	want.Log.Level = domain.LogLevelDebug

	require.NoError(t, service.Save(&want))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
	assert.Equal(t, "debug", store.GetString("log.level"))
}

func TestSettingsService_Save_RejectsInvalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings := domain.DefaultAppSettings()
	settings.Artifacts.ModelFile = ""

	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
}

func TestSettingsService_Setters(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetArtifactDir("/opt/models"))
	require.NoError(t, service.SetBundle("bundle.db"))
	require.NoError(t, service.SetLowYieldThreshold(120))
	require.NoError(t, service.SetLogLevel(domain.LogLevelError))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "/opt/models", settings.Artifacts.Dir)
	assert.True(t, settings.Artifacts.UsesBundle())
	assert.Equal(t, 120.0, settings.Display.LowYieldThreshold)
	assert.Equal(t, domain.LogLevelError, settings.Log.Level)

	require.NoError(t, service.SetBundle(""))
	settings, err = service.Get()
	require.NoError(t, err)
	assert.False(t, settings.Artifacts.UsesBundle())
}

func TestSettingsService_Setters_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.SetArtifactDir(""), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetLowYieldThreshold(-1), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetLogLevel("loud"), domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	assert.NoError(t, service.Validate())

	_ = store.Set("display.low_yield_threshold", -5.0)
	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidInput)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
