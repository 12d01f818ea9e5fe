package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driven"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driving"
	"github.com/custodia-labs/yieldcast/internal/logger"
)

// Ensure PredictionService implements the interface.
var _ driving.PredictionService = (*PredictionService)(nil)

// PredictionService encodes form input, assembles the feature row and
// evaluates the model. It holds no per-request state.
type PredictionService struct {
	artifacts    *ArtifactStore
	lowThreshold float64
	newID        func() string
}

// NewPredictionService creates a prediction service over loaded artifacts.
// lowYieldThreshold drives the low-yield advisory: 0 turns it off and
// negative values use the default.
func NewPredictionService(artifacts *ArtifactStore, lowYieldThreshold float64) *PredictionService {
	if lowYieldThreshold < 0 {
		lowYieldThreshold = domain.DefaultLowYieldThreshold
	}
	return &PredictionService{
		artifacts:    artifacts,
		lowThreshold: lowYieldThreshold,
		newID:        uuid.NewString,
	}
}

// Encode maps a label of column to its trained code.
// Labels the encoder never saw return domain.UnseenCode without error.
func (s *PredictionService) Encode(column, label string) (int, error) {
	encoders, err := s.artifacts.Encoders()
	if err != nil {
		return 0, err
	}
	return encode(encoders, column, label)
}

func encode(encoders domain.EncoderTable, column, label string) (int, error) {
	enc, err := encoders.Lookup(column)
	if err != nil {
		return 0, err
	}
	code := enc.Encode(label)
	if code == domain.UnseenCode {
		logger.Warn("label %q not seen in training for %s, encoded as %d", label, column, code)
	}
	return code, nil
}

// Categories returns the labels known for column in training order.
func (s *PredictionService) Categories(column string) ([]string, error) {
	encoders, err := s.artifacts.Encoders()
	if err != nil {
		return nil, err
	}
	enc, err := encoders.Lookup(column)
	if err != nil {
		return nil, err
	}
	return enc.Classes(), nil
}

// Assemble builds the feature row from raw values using the loaded schema.
func (s *PredictionService) Assemble(raw map[string]any) (domain.Row, []domain.Substitution, error) {
	schema, err := s.artifacts.Schema()
	if err != nil {
		return domain.Row{}, nil, err
	}
	row, subs := Assemble(raw, schema)
	return row, subs, nil
}

// Predict encodes the categorical labels of input, assembles the row and
// evaluates the model.
func (s *PredictionService) Predict(ctx context.Context, input domain.FormInput) (*domain.Prediction, error) {
	logger.Section("Prediction")

	schema, err := s.artifacts.Schema()
	if err != nil {
		return nil, err
	}
	encoders, err := s.artifacts.Encoders()
	if err != nil {
		return nil, err
	}

	raw := make(map[string]any, len(input.Numeric)+len(input.Categorical))
	for name, v := range input.Numeric {
		raw[name] = v
	}

	var unseen []string
	columns := make([]string, 0, len(input.Categorical))
	for col := range input.Categorical {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	for _, col := range columns {
		code, err := encode(encoders, col, input.Categorical[col])
		if err != nil {
			return nil, err
		}
		if code == domain.UnseenCode {
			unseen = append(unseen, col)
		}
		feature, ok := schema.FeatureForColumn(col)
		if !ok {
			logger.Debug("Column %s has no feature in the schema, ignored", col)
			continue
		}
		raw[feature] = code
		logger.Debug("Encoded %s=%q as %s=%d", col, input.Categorical[col], feature, code)
	}

	for _, col := range encoders.Columns() {
		if _, given := input.Categorical[col]; given {
			continue
		}
		feature, ok := schema.FeatureForColumn(col)
		if !ok {
			continue
		}
		raw[feature] = domain.UnseenCode
		unseen = append(unseen, col)
		logger.Warn("no label given for %s, encoded as %d", col, domain.UnseenCode)
	}

	return s.infer(ctx, raw, unseen)
}

// PredictRaw evaluates raw values whose categoricals are already encoded.
func (s *PredictionService) PredictRaw(ctx context.Context, raw map[string]any) (*domain.Prediction, error) {
	logger.Section("Prediction")
	return s.infer(ctx, raw, nil)
}

func (s *PredictionService) infer(ctx context.Context, raw map[string]any, unseen []string) (*domain.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	schema, err := s.artifacts.Schema()
	if err != nil {
		return nil, err
	}
	model, err := s.artifacts.Model()
	if err != nil {
		return nil, err
	}

	row, subs := Assemble(raw, schema)
	for _, sub := range subs {
		logger.Debug("Substituted %s=%v with %v (%s)", sub.Feature, sub.Raw, domain.SubstituteValue, sub.Reason)
	}

	id := s.newID()
	out, err := evaluate(model, row.Values())
	if err != nil {
		logger.Error(err, "prediction %s failed", id)
		return nil, err
	}

	p := domain.NewPrediction(id, out, s.lowThreshold, row)
	p.Substitutions = subs
	p.UnseenColumns = unseen
	if p.Clamped {
		logger.Debug("Clamped raw output %v to %v", p.Raw, p.Yield)
	}
	logger.Info("prediction %s: %s", id, FormatYield(p.Yield))
	return p, nil
}

// evaluate calls the model, turning errors and panics into ErrPredictionFailed.
func evaluate(model driven.Model, values []float64) (out float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = 0
			err = fmt.Errorf("%w: model panicked: %v", domain.ErrPredictionFailed, r)
		}
	}()

	out, err = model.Predict(values)
	if err != nil {
		if errors.Is(err, domain.ErrPredictionFailed) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", domain.ErrPredictionFailed, err)
	}
	return out, nil
}

// Importances returns the model's per-feature importance scores paired
// with schema names, sorted ascending by score and then by name.
func (s *PredictionService) Importances() ([]domain.FeatureImportance, error) {
	schema, err := s.artifacts.Schema()
	if err != nil {
		return nil, err
	}
	model, err := s.artifacts.Model()
	if err != nil {
		return nil, err
	}

	reporter, ok := model.(driven.ImportanceReporter)
	if !ok {
		return nil, fmt.Errorf("%w: model does not report importances", domain.ErrImportancesUnavailable)
	}
	scores := reporter.FeatureImportances()
	if len(scores) != schema.Len() {
		logger.Warn("model reports %d importance scores for %d features", len(scores), schema.Len())
		return nil, fmt.Errorf("%w: %d scores for %d features",
			domain.ErrImportancesUnavailable, len(scores), schema.Len())
	}

	names := schema.Names()
	out := make([]domain.FeatureImportance, len(names))
	for i, name := range names {
		out[i] = domain.FeatureImportance{Name: name, Score: scores[i]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// LowYieldThreshold returns the threshold used for the low-yield advisory.
func (s *PredictionService) LowYieldThreshold() float64 {
	return s.lowThreshold
}
