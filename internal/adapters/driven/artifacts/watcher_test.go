package artifacts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_HandleEvent(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "lgbm_model.txt")
	w := NewFileWatcher(model, filepath.Join(dir, "features_list.json"))

	tests := []struct {
		name    string
		event   fsnotify.Event
		changed bool
	}{
		{"write to artifact", fsnotify.Event{Name: model, Op: fsnotify.Write}, true},
		{"artifact replaced", fsnotify.Event{Name: model, Op: fsnotify.Create}, true},
		{"artifact removed", fsnotify.Event{Name: model, Op: fsnotify.Remove}, true},
		{"artifact renamed", fsnotify.Event{Name: model, Op: fsnotify.Rename}, true},
		{"write and chmod", fsnotify.Event{Name: model, Op: fsnotify.Write | fsnotify.Chmod}, true},
		{"chmod only", fsnotify.Event{Name: model, Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, changed := w.handleEvent(tt.event)
			assert.Equal(t, tt.changed, changed)
			if tt.changed {
				assert.Equal(t, model, path)
			}
		})
	}
}

func TestFileWatcher_Watch(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "lgbm_model.txt")
	require.NoError(t, os.WriteFile(model, []byte("v1"), 0600))

	w := NewFileWatcher(model)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := w.Watch(ctx)
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0600)
		_ = os.WriteFile(model, []byte("v2"), 0600)
	}()

	select {
	case path := <-changes:
		assert.Equal(t, model, path)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for artifact change")
	}

	cancel()
	for range changes {
	}
	assert.NoError(t, w.Close())
}

func TestFileWatcher_MissingDirectory(t *testing.T) {
	w := NewFileWatcher(filepath.Join(t.TempDir(), "gone", "lgbm_model.txt"))

	_, err := w.Watch(context.Background())

	assert.Error(t, err)
}

func TestFileWatcher_CloseBeforeWatch(t *testing.T) {
	assert.NoError(t, NewFileWatcher("model.txt").Close())
}
