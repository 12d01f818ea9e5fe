package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/yieldcast/internal/adapters/driven/artifacts"
	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driven"
	"github.com/custodia-labs/yieldcast/internal/logger"
)

// Ensure BundleSource implements the interface.
var _ driven.ArtifactSource = (*BundleSource)(nil)

// BundleSource loads the artifacts from a SQLite bundle.
// Each load opens the file read-only and closes it again.
type BundleSource struct {
	path string
}

// NewBundleSource creates a source for the bundle at path.
func NewBundleSource(path string) *BundleSource {
	return &BundleSource{path: path}
}

// Describe returns the bundle path.
func (b *BundleSource) Describe() string {
	return "bundle " + b.path
}

// LoadSchema reads the feature list.
func (b *BundleSource) LoadSchema(ctx context.Context) (domain.FeatureSchema, error) {
	var names []string
	err := b.read(ctx, domain.ArtifactFeatures, func(s *Store) error {
		var err error
		names, err = s.Features(ctx)
		return err
	})
	if err != nil {
		return domain.FeatureSchema{}, err
	}

	schema, err := domain.NewFeatureSchema(names)
	if err != nil {
		return domain.FeatureSchema{}, b.artifactError(domain.ArtifactFeatures, err)
	}
	return schema, nil
}

// LoadEncoders reads the encoder table.
func (b *BundleSource) LoadEncoders(ctx context.Context) (domain.EncoderTable, error) {
	var classes map[string][]string
	err := b.read(ctx, domain.ArtifactEncoders, func(s *Store) error {
		var err error
		classes, err = s.EncoderClasses(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	table, err := artifacts.NewEncoderTable(classes)
	if err != nil {
		return nil, b.artifactError(domain.ArtifactEncoders, err)
	}
	return table, nil
}

// LoadModel reads and parses the stored model.
func (b *BundleSource) LoadModel(ctx context.Context) (driven.Model, error) {
	var format, body string
	err := b.read(ctx, domain.ArtifactModel, func(s *Store) error {
		var err error
		format, body, err = s.Model(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	model, err := artifacts.DecodeModel(format, strings.NewReader(body))
	if err != nil {
		return nil, b.artifactError(domain.ArtifactModel, err)
	}
	return model, nil
}

func (b *BundleSource) read(ctx context.Context, kind domain.ArtifactKind, fn func(*Store) error) error {
	if err := ctx.Err(); err != nil {
		return b.artifactError(kind, err)
	}
	store, err := Open(b.path)
	if err != nil {
		return b.artifactError(kind, err)
	}
	defer store.Close()

	if err := fn(store); err != nil {
		return b.artifactError(kind, err)
	}
	logger.Debug("Read %s from %s", kind, b.path)
	return nil
}

func (b *BundleSource) artifactError(kind domain.ArtifactKind, err error) *domain.ArtifactError {
	return &domain.ArtifactError{Kind: kind, Location: b.path + "#" + string(kind), Err: err}
}

// WriteBundle loads every artifact from source and writes them to a new
// bundle at path. The model text is stored as read by modelText, after
// the source has proven it parses.
func WriteBundle(
	ctx context.Context,
	path string,
	source driven.ArtifactSource,
	modelText func() ([]byte, error),
) error {
	schema, err := source.LoadSchema(ctx)
	if err != nil {
		return err
	}
	encoders, err := source.LoadEncoders(ctx)
	if err != nil {
		return err
	}
	model, err := source.LoadModel(ctx)
	if err != nil {
		return err
	}
	if model.NumFeatures() != schema.Len() {
		return fmt.Errorf("model expects %d features, feature list has %d", model.NumFeatures(), schema.Len())
	}
	body, err := modelText()
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("model text is empty")
	}

	store, err := Create(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.WriteArtifacts(ctx, schema, encoders, artifacts.ModelFormatLightGBM, body); err != nil {
		return fmt.Errorf("writing bundle: %w", err)
	}
	if err := store.Commit(); err != nil {
		return fmt.Errorf("writing bundle: %w", err)
	}
	logger.Info("wrote bundle %s: %d features, %d encoders", path, schema.Len(), len(encoders))
	return nil
}
