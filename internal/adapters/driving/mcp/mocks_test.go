package mcp

import (
	"context"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

// mockArtifactService is a mock implementation of driving.ArtifactService.
type mockArtifactService struct {
	status   domain.ArtifactStatus
	schema   domain.FeatureSchema
	encoders domain.EncoderTable
	err      error
}

func (m *mockArtifactService) Load(_ context.Context) error {
	return m.err
}

func (m *mockArtifactService) Status() domain.ArtifactStatus {
	return m.status
}

func (m *mockArtifactService) Schema() (domain.FeatureSchema, error) {
	return m.schema, m.err
}

func (m *mockArtifactService) Encoders() (domain.EncoderTable, error) {
	return m.encoders, m.err
}

func (m *mockArtifactService) Changes(_ context.Context) (<-chan string, error) {
	return nil, nil
}

// mockPredictionService is a mock implementation of driving.PredictionService.
type mockPredictionService struct {
	prediction  *domain.Prediction
	importances []domain.FeatureImportance
	labels      map[string][]string
	err         error

	lastInput domain.FormInput
	lastRaw   map[string]any
}

func (m *mockPredictionService) Encode(_, _ string) (int, error) {
	return 0, m.err
}

func (m *mockPredictionService) Categories(column string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	labels, ok := m.labels[column]
	if !ok {
		return nil, domain.ErrUnknownColumn
	}
	return labels, nil
}

func (m *mockPredictionService) Assemble(_ map[string]any) (domain.Row, []domain.Substitution, error) {
	return domain.Row{}, nil, m.err
}

func (m *mockPredictionService) Predict(_ context.Context, input domain.FormInput) (*domain.Prediction, error) {
	m.lastInput = input
	return m.prediction, m.err
}

func (m *mockPredictionService) PredictRaw(_ context.Context, raw map[string]any) (*domain.Prediction, error) {
	m.lastRaw = raw
	return m.prediction, m.err
}

func (m *mockPredictionService) Importances() ([]domain.FeatureImportance, error) {
	return m.importances, m.err
}
