package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/yieldcast/internal/logger"
)

// Changes forwards artifact changes seen by the attached watcher. The
// loaded artifacts stay in use; every change is logged as a warning.
func (s *ArtifactStore) Changes(ctx context.Context) (<-chan string, error) {
	if s.watcher == nil {
		return nil, nil
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	in, err := s.watcher.Watch(ctx)
	if err != nil {
		return nil, fmt.Errorf("watching artifacts: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for path := range in {
			logger.Warn("artifact %s changed on disk, restart to load it", path)
			select {
			case out <- path:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
