package driven

import (
	"context"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

// ArtifactSource reads the three training artifacts.
// Implementations return *domain.ArtifactError for missing or unreadable artifacts.
type ArtifactSource interface {
	// LoadSchema reads the ordered feature names.
	LoadSchema(ctx context.Context) (domain.FeatureSchema, error)

	// LoadEncoders reads the categorical encoder table.
	LoadEncoders(ctx context.Context) (domain.EncoderTable, error)

	// LoadModel reads the trained model.
	LoadModel(ctx context.Context) (Model, error)

	// Describe returns where the artifacts are read from.
	Describe() string
}

// ArtifactWatcher reports changes to artifact files after they were loaded.
type ArtifactWatcher interface {
	// Watch starts watching and returns a channel of changed paths.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan string, error)

	// Close stops watching.
	Close() error
}
