package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driven"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driving"
	"github.com/custodia-labs/yieldcast/internal/logger"
)

// Ensure ArtifactStore implements the interface.
var _ driving.ArtifactService = (*ArtifactStore)(nil)

// ArtifactStore loads the model, encoders and feature schema once and
// serves them read-only afterwards. A failed load is cached too: the
// process must be restarted with fixed artifacts.
type ArtifactStore struct {
	source  driven.ArtifactSource
	watcher driven.ArtifactWatcher

	once sync.Once
	mu   sync.RWMutex

	status   domain.ArtifactStatus
	loadErr  error
	schema   domain.FeatureSchema
	encoders domain.EncoderTable
	model    driven.Model
}

// NewArtifactStore creates a store that reads from source on first Load.
func NewArtifactStore(source driven.ArtifactSource) *ArtifactStore {
	return &ArtifactStore{
		source: source,
		status: domain.ArtifactStatus{State: domain.ArtifactStateUnloaded},
	}
}

// WithWatcher attaches a watcher that reports artifact changes after load.
func (s *ArtifactStore) WithWatcher(w driven.ArtifactWatcher) *ArtifactStore {
	s.watcher = w
	return s
}

// Load reads all artifacts. Only the first call touches the source.
func (s *ArtifactStore) Load(ctx context.Context) error {
	s.once.Do(func() {
		schema, encoders, model, err := s.load(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		s.status.Source = s.source.Describe()
		if err != nil {
			var artifactErr *domain.ArtifactError
			errors.As(err, &artifactErr)
			s.status.State = domain.ArtifactStateUnavailable
			s.status.Err = artifactErr
			s.loadErr = err
			logger.Error(err, "artifacts unavailable")
			return
		}

		s.schema = schema
		s.encoders = encoders
		s.model = model
		s.status.State = domain.ArtifactStateReady
		s.status.FeatureCount = schema.Len()
		s.status.EncoderColumns = encoders.Columns()
		logger.Info("artifacts loaded from %s: %d features, %d encoders",
			s.status.Source, schema.Len(), len(encoders))
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *ArtifactStore) load(ctx context.Context) (
	domain.FeatureSchema, domain.EncoderTable, driven.Model, error,
) {
	logger.Section("Loading Artifacts")
	where := s.source.Describe()
	logger.Debug("Source: %s", where)

	schema, err := s.source.LoadSchema(ctx)
	if err != nil {
		return domain.FeatureSchema{}, nil, nil, asArtifactError(domain.ArtifactFeatures, where, err)
	}
	if schema.IsZero() {
		return domain.FeatureSchema{}, nil, nil, &domain.ArtifactError{
			Kind: domain.ArtifactFeatures, Location: where, Err: errors.New("feature list is empty"),
		}
	}
	logger.Debug("Schema: %d features", schema.Len())

	encoders, err := s.source.LoadEncoders(ctx)
	if err != nil {
		return domain.FeatureSchema{}, nil, nil, asArtifactError(domain.ArtifactEncoders, where, err)
	}
	for _, col := range encoders.Columns() {
		if _, ok := schema.FeatureForColumn(col); !ok {
			logger.Debug("Encoder %s has no feature in the schema", col)
		}
	}

	model, err := s.source.LoadModel(ctx)
	if err != nil {
		return domain.FeatureSchema{}, nil, nil, asArtifactError(domain.ArtifactModel, where, err)
	}
	if model == nil {
		return domain.FeatureSchema{}, nil, nil, &domain.ArtifactError{
			Kind: domain.ArtifactModel, Location: where, Err: errors.New("source returned no model"),
		}
	}
	if n := model.NumFeatures(); n != schema.Len() {
		return domain.FeatureSchema{}, nil, nil, &domain.ArtifactError{
			Kind:     domain.ArtifactModel,
			Location: where,
			Err:      fmt.Errorf("model expects %d features, feature list has %d", n, schema.Len()),
		}
	}
	if named, ok := model.(driven.NamedFeatures); ok {
		warnOnNameDrift(named.FeatureNames(), schema)
	}

	return schema, encoders, model, nil
}

// warnOnNameDrift logs when the model's own feature names disagree with
// the schema. The schema still wins: rows are built in schema order.
func warnOnNameDrift(modelNames []string, schema domain.FeatureSchema) {
	if len(modelNames) != schema.Len() {
		return
	}
	names := schema.Names()
	for i, name := range modelNames {
		if name != names[i] {
			logger.Warn("model feature %d is %q but feature list has %q", i, name, names[i])
			return
		}
	}
}

func asArtifactError(kind domain.ArtifactKind, where string, err error) error {
	var artifactErr *domain.ArtifactError
	if errors.As(err, &artifactErr) {
		return artifactErr
	}
	return &domain.ArtifactError{Kind: kind, Location: where, Err: err}
}

// Status returns a snapshot of the store state.
func (s *ArtifactStore) Status() domain.ArtifactStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.status
	if st.EncoderColumns != nil {
		st.EncoderColumns = append([]string(nil), st.EncoderColumns...)
	}
	return st
}

// Schema returns the feature schema once ready.
func (s *ArtifactStore) Schema() (domain.FeatureSchema, error) {
	if err := s.ready(); err != nil {
		return domain.FeatureSchema{}, err
	}
	return s.schema, nil
}

// Encoders returns the encoder table once ready.
func (s *ArtifactStore) Encoders() (domain.EncoderTable, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.encoders, nil
}

// Model returns the trained model once ready.
func (s *ArtifactStore) Model() (driven.Model, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.model, nil
}

func (s *ArtifactStore) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.status.State {
	case domain.ArtifactStateReady:
		return nil
	case domain.ArtifactStateUnavailable:
		return s.loadErr
	default:
		return fmt.Errorf("%w: artifacts not loaded", domain.ErrArtifactUnavailable)
	}
}
