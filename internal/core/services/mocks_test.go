package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driven"
)

// fakeSource serves artifacts from memory and counts calls.
type fakeSource struct {
	features []string
	encoders map[string][]string
	model    driven.Model

	schemaErr   error
	encodersErr error
	modelErr    error

	schemaCalls   int
	encodersCalls int
	modelCalls    int
}

func (f *fakeSource) LoadSchema(_ context.Context) (domain.FeatureSchema, error) {
	f.schemaCalls++
	if f.schemaErr != nil {
		return domain.FeatureSchema{}, f.schemaErr
	}
	return domain.NewFeatureSchema(f.features)
}

func (f *fakeSource) LoadEncoders(_ context.Context) (domain.EncoderTable, error) {
	f.encodersCalls++
	if f.encodersErr != nil {
		return nil, f.encodersErr
	}
	table := make(domain.EncoderTable, len(f.encoders))
	for col, classes := range f.encoders {
		enc, err := domain.NewLabelEncoder(col, classes)
		if err != nil {
			return nil, err
		}
		table[col] = enc
	}
	return table, nil
}

func (f *fakeSource) LoadModel(_ context.Context) (driven.Model, error) {
	f.modelCalls++
	if f.modelErr != nil {
		return nil, f.modelErr
	}
	return f.model, nil
}

func (f *fakeSource) Describe() string {
	return "memory"
}

// stubModel returns a fixed output and records the row it was given.
type stubModel struct {
	features    int
	output      float64
	err         error
	panicWith   any
	importances []float64
	lastValues  []float64
}

func (m *stubModel) Predict(values []float64) (float64, error) {
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	m.lastValues = append([]float64(nil), values...)
	if m.err != nil {
		return 0, m.err
	}
	return m.output, nil
}

func (m *stubModel) NumFeatures() int {
	return m.features
}

// reportingModel adds importances to stubModel.
type reportingModel struct {
	*stubModel
}

func (m reportingModel) FeatureImportances() []float64 {
	return m.importances
}

var errDisk = errors.New("no such file or directory")

// scenarioSource is the two-feature setup: numeric A, categorical B with "x" at code 2.
func scenarioSource(model driven.Model) *fakeSource {
	return &fakeSource{
		features: []string{"A", "B"},
		encoders: map[string][]string{"B": {"v", "w", "x"}},
		model:    model,
	}
}

// loadedStore returns a ready store over source.
func loadedStore(source *fakeSource) *ArtifactStore {
	store := NewArtifactStore(source)
	if err := store.Load(context.Background()); err != nil {
		panic(err)
	}
	return store
}

// fakeWatcher hands out a channel the test feeds.
type fakeWatcher struct {
	changes  chan string
	watchErr error
	closed   bool
}

func (w *fakeWatcher) Watch(ctx context.Context) (<-chan string, error) {
	if w.watchErr != nil {
		return nil, w.watchErr
	}
	out := make(chan string)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case p, ok := <-w.changes:
				if !ok {
					return
				}
				out <- p
			}
		}
	}()
	return out, nil
}

func (w *fakeWatcher) Close() error {
	w.closed = true
	return nil
}
