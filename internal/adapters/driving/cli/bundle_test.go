package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleCreateCmd(t *testing.T) {
	setupTestServices(t, nil)
	var gotOut string
	exportBundle = func(_ context.Context, out string) error {
		gotOut = out
		return nil
	}

	out, err := runCLI(t, "bundle", "create", "--out", "/tmp/models.db")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/models.db", gotOut)
	assert.Contains(t, out, "Wrote bundle /tmp/models.db")
}

func TestBundleCreateCmd_DefaultOut(t *testing.T) {
	setupTestServices(t, nil)
	var gotOut string
	exportBundle = func(_ context.Context, out string) error {
		gotOut = out
		return nil
	}

	_, err := runCLI(t, "bundle", "create")

	require.NoError(t, err)
	assert.Equal(t, "yieldcast.db", gotOut)
}

func TestBundleCreateCmd_Failure(t *testing.T) {
	setupTestServices(t, nil)
	exportBundle = func(_ context.Context, _ string) error {
		return errors.New("model artifact unavailable")
	}

	_, err := runCLI(t, "bundle", "create")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bundle create failed")
}

func TestBundleCreateCmd_NotConfigured(t *testing.T) {
	setupTestServices(t, nil)

	_, err := runCLI(t, "bundle", "create")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bundle export not configured")
}
