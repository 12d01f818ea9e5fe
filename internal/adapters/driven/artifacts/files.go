package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driven"
	"github.com/custodia-labs/yieldcast/internal/logger"
)

// Ensure FileSource implements the interface.
var _ driven.ArtifactSource = (*FileSource)(nil)

// FileSource reads the artifacts from three files.
type FileSource struct {
	modelPath    string
	encodersPath string
	featuresPath string
}

// NewFileSource creates a source from the artifact settings.
func NewFileSource(settings domain.ArtifactSettings) *FileSource {
	return &FileSource{
		modelPath:    settings.ModelPath(),
		encodersPath: settings.EncodersPath(),
		featuresPath: settings.FeaturesPath(),
	}
}

// Paths returns the artifact file paths in load order.
func (s *FileSource) Paths() []string {
	return []string{s.featuresPath, s.encodersPath, s.modelPath}
}

// Describe returns the artifact files.
func (s *FileSource) Describe() string {
	return fmt.Sprintf("%s, %s, %s", s.featuresPath, s.encodersPath, s.modelPath)
}

// LoadSchema reads the feature list.
func (s *FileSource) LoadSchema(ctx context.Context) (domain.FeatureSchema, error) {
	data, err := readArtifact(ctx, domain.ArtifactFeatures, s.featuresPath)
	if err != nil {
		return domain.FeatureSchema{}, err
	}
	schema, err := DecodeFeatures(data, FormatFor(s.featuresPath))
	if err != nil {
		return domain.FeatureSchema{}, artifactError(domain.ArtifactFeatures, s.featuresPath, err)
	}
	logger.Debug("Read %d features from %s", schema.Len(), s.featuresPath)
	return schema, nil
}

// LoadEncoders reads the encoder table.
func (s *FileSource) LoadEncoders(ctx context.Context) (domain.EncoderTable, error) {
	data, err := readArtifact(ctx, domain.ArtifactEncoders, s.encodersPath)
	if err != nil {
		return nil, err
	}
	table, err := DecodeEncoders(data, FormatFor(s.encodersPath))
	if err != nil {
		return nil, artifactError(domain.ArtifactEncoders, s.encodersPath, err)
	}
	logger.Debug("Read encoders for %v from %s", table.Columns(), s.encodersPath)
	return table, nil
}

// LoadModel reads the LightGBM model.
func (s *FileSource) LoadModel(ctx context.Context) (driven.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, artifactError(domain.ArtifactModel, s.modelPath, err)
	}
	f, err := os.Open(s.modelPath)
	if err != nil {
		return nil, artifactError(domain.ArtifactModel, s.modelPath, describeOpenError(err))
	}
	defer f.Close()

	model, err := DecodeModel(ModelFormatLightGBM, f)
	if err != nil {
		return nil, artifactError(domain.ArtifactModel, s.modelPath, err)
	}
	logger.Debug("Read model from %s", s.modelPath)
	return model, nil
}

// ModelText returns the raw model file, for bundling.
func (s *FileSource) ModelText() ([]byte, error) {
	data, err := os.ReadFile(s.modelPath)
	if err != nil {
		return nil, artifactError(domain.ArtifactModel, s.modelPath, describeOpenError(err))
	}
	return data, nil
}

func readArtifact(ctx context.Context, kind domain.ArtifactKind, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, artifactError(kind, path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, artifactError(kind, path, describeOpenError(err))
	}
	return data, nil
}

func describeOpenError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file not found: %w", fs.ErrNotExist)
	}
	return err
}

func artifactError(kind domain.ArtifactKind, location string, err error) *domain.ArtifactError {
	return &domain.ArtifactError{Kind: kind, Location: location, Err: err}
}
