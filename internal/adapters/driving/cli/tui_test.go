package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/yieldcast/internal/logger"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Contains(t, tuiCmd.Long, "ctrl+t")
}

func TestTUICmd_NotConfigured(t *testing.T) {
	setupTestServices(t, nil)

	_, err := runCLI(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}

func TestTUICmd_RequiresTerminal(t *testing.T) {
	setupTestServices(t, &testSource{model: &testModel{}})
	prev := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = prev })

	_, err := runCLI(t, "tui")

	assert.ErrorIs(t, err, ErrNoTerminal)
}

func TestSetTUIConfig(t *testing.T) {
	prev := tuiConfig
	t.Cleanup(func() { tuiConfig = prev })

	cfg := &TUIConfig{LogFile: "tui.log"}
	SetTUIConfig(cfg)

	assert.Same(t, cfg, tuiConfig)
}

func TestRedirectLogs_File(t *testing.T) {
	prev := tuiConfig
	t.Cleanup(func() { tuiConfig = prev })
	path := filepath.Join(t.TempDir(), "logs", "tui.log")
	SetTUIConfig(&TUIConfig{LogFile: path})

	restore, err := redirectLogs()
	require.NoError(t, err)
	logger.Warn("artifact %s changed on disk", "models/lgbm_model.txt")
	restore()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "changed on disk")
}

func TestRedirectLogs_Discard(t *testing.T) {
	prev := tuiConfig
	t.Cleanup(func() { tuiConfig = prev })
	SetTUIConfig(nil)

	restore, err := redirectLogs()
	require.NoError(t, err)
	restore()

	buf := new(bytes.Buffer)
	logger.SetOutput(buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	logger.Warn("visible again")
	assert.Contains(t, buf.String(), "visible again")
}
