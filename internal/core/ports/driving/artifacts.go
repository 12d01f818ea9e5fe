package driving

import (
	"context"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

// ArtifactService owns the artifacts for the process lifetime.
type ArtifactService interface {
	// Load reads all artifacts once. Later calls return the first outcome.
	Load(ctx context.Context) error

	// Status returns the tagged state of the store.
	Status() domain.ArtifactStatus

	// Schema returns the feature schema once ready.
	Schema() (domain.FeatureSchema, error)

	// Encoders returns the encoder table once ready.
	Encoders() (domain.EncoderTable, error)

	// Changes reports artifact files that changed on disk after a
	// successful load. It returns a nil channel if nothing is watched.
	Changes(ctx context.Context) (<-chan string, error)
}
