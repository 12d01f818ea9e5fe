package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

func TestSettingsCmd_Show(t *testing.T) {
	setupTestServices(t, nil)

	out, err := runCLI(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Artifacts]")
	assert.Contains(t, out, "Directory: models")
	assert.Contains(t, out, "Model: models/lgbm_model.txt")
	assert.Contains(t, out, "Low yield threshold: 100 kg/ha")
	assert.Contains(t, out, "Level: Info")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_ShowBundle(t *testing.T) {
	setupTestServices(t, nil)
	require.NoError(t, settingsService.SetBundle("/srv/yieldcast.db"))

	out, err := runCLI(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Bundle: /srv/yieldcast.db")
	assert.NotContains(t, out, "Directory:")
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	setupTestServices(t, nil)
	settingsService = nil

	_, err := runCLI(t, "settings")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestSettingsCmd_Artifacts(t *testing.T) {
	setupTestServices(t, nil)

	out, err := runCLI(t, "settings", "artifacts", "/srv/models")

	require.NoError(t, err)
	assert.Contains(t, out, "Artifact directory set to: /srv/models")
	got, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, "/srv/models", got.Artifacts.Dir)
}

func TestSettingsCmd_Bundle(t *testing.T) {
	setupTestServices(t, nil)

	out, err := runCLI(t, "settings", "bundle", "/srv/yieldcast.db")
	require.NoError(t, err)
	assert.Contains(t, out, "Bundle set to: /srv/yieldcast.db")

	out, err = runCLI(t, "settings", "bundle", "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Bundle cleared")

	got, err := settingsService.Get()
	require.NoError(t, err)
	assert.False(t, got.Artifacts.UsesBundle())
}

func TestSettingsCmd_BundleRequiresPath(t *testing.T) {
	setupTestServices(t, nil)

	_, err := runCLI(t, "settings", "bundle")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bundle path required")
}

func TestSettingsCmd_Threshold(t *testing.T) {
	setupTestServices(t, nil)

	out, err := runCLI(t, "settings", "threshold", "250.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Low yield threshold set to: 250.5 kg/ha")

	_, err = runCLI(t, "settings", "threshold", "plenty")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = runCLI(t, "settings", "threshold", "--", "-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_LogLevel(t *testing.T) {
	setupTestServices(t, nil)

	out, err := runCLI(t, "settings", "log-level", "WARN")
	require.NoError(t, err)
	assert.Contains(t, out, "Log level set to: warn")

	_, err = runCLI(t, "settings", "log-level", "loud")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_Wizard(t *testing.T) {
	setupTestServices(t, nil)

	rootCmd.SetIn(strings.NewReader("/srv/models\n250\n1\n"))
	buf := new(strings.Builder)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "wizard"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "Configuration Complete!")
	got, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, "/srv/models", got.Artifacts.Dir)
	assert.Equal(t, 250.0, got.Display.LowYieldThreshold)
	assert.Equal(t, domain.LogLevelDebug, got.Log.Level)
}

func TestSettingsCmd_WizardKeepsDefaults(t *testing.T) {
	setupTestServices(t, nil)

	rootCmd.SetIn(strings.NewReader("\n\n\n"))
	rootCmd.SetOut(new(strings.Builder))
	rootCmd.SetArgs([]string{"settings", "wizard"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	got, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *got)
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 2},
		{"1", 1},
		{"4", 4},
		{"5", 2},
		{"0", 2},
		{"x", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseChoice(tt.input, 4, 2), "input %q", tt.input)
	}
}
