package artifacts

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/yieldcast/internal/core/ports/driven"
	"github.com/custodia-labs/yieldcast/internal/logger"
)

// Ensure FileWatcher implements the interface.
var _ driven.ArtifactWatcher = (*FileWatcher)(nil)

// FileWatcher reports changes to artifact files. It watches the parent
// directories so that files replaced by rename are still noticed.
type FileWatcher struct {
	paths map[string]bool
	dirs  []string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// NewFileWatcher creates a watcher for the given files.
func NewFileWatcher(paths ...string) *FileWatcher {
	w := &FileWatcher{paths: make(map[string]bool, len(paths))}
	seen := make(map[string]bool)
	for _, p := range paths {
		clean := filepath.Clean(p)
		w.paths[clean] = true
		dir := filepath.Dir(clean)
		if !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w
}

// Watch starts watching. The returned channel yields each changed
// artifact path and is closed when ctx is cancelled or Close is called.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan string, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	w.mu.Lock()
	w.watcher = fw
	w.mu.Unlock()

	changes := make(chan string)
	go func() {
		defer close(changes)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				path, changed := w.handleEvent(event)
				if !changed {
					continue
				}
				select {
				case changes <- path:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("artifact watcher: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleEvent returns the artifact path an event refers to, if any.
func (w *FileWatcher) handleEvent(event fsnotify.Event) (string, bool) {
	path := filepath.Clean(event.Name)
	if !w.paths[path] {
		return "", false
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return path, true
	}
	return "", false
}

// Close stops watching.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}
