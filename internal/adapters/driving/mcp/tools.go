package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/services"
)

// PredictInput is the input schema for the predict_yield tool.
type PredictInput struct {
	Numeric     map[string]float64 `json:"numeric,omitempty" jsonschema:"numeric feature values by name, unset fields use form defaults"`
	Categorical map[string]string  `json:"categorical,omitempty" jsonschema:"human-readable labels by column, e.g. Crop=Rice"`
}

// PredictEncodedInput is the input schema for the predict_encoded tool.
type PredictEncodedInput struct {
	Features map[string]float64 `json:"features" jsonschema:"the complete encoded feature row by name, missing features become 0"`
}

// PredictOutput is the output schema for the prediction tools.
type PredictOutput struct {
	RequestID     string                `json:"request_id"`
	Yield         float64               `json:"yield_kg_ha"`
	Display       string                `json:"display"`
	Clamped       bool                  `json:"clamped"`
	Advisory      string                `json:"advisory"`
	Message       string                `json:"message,omitempty"`
	Row           []domain.RowEntry     `json:"row"`
	UnseenColumns []string              `json:"unseen_columns,omitempty"`
	Substitutions []domain.Substitution `json:"substitutions,omitempty"`
}

// CategoriesInput is the input schema for the list_categories tool.
type CategoriesInput struct {
	Column string `json:"column,omitempty" jsonschema:"a single categorical column, all columns when empty"`
}

// CategoriesOutput is the output schema for the list_categories tool.
type CategoriesOutput struct {
	Categories map[string][]string `json:"categories"`
}

// ImportancesInput is the (empty) input schema for the feature_importances tool.
type ImportancesInput struct{}

// ImportancesOutput is the output schema for the feature_importances tool.
type ImportancesOutput struct {
	Importances []domain.FeatureImportance `json:"importances"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "predict_yield",
		Description: "Estimate crop yield in kg/ha from numeric inputs and categorical labels",
	}, s.handlePredict)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "predict_encoded",
		Description: "Estimate crop yield in kg/ha from an already encoded feature row",
	}, s.handlePredictEncoded)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the labels the model was trained on for each categorical column",
	}, s.handleListCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "feature_importances",
		Description: "Report how often the model splits on each feature, lowest first",
	}, s.handleImportances)
}

func (s *Server) handlePredict(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PredictInput,
) (*mcp.CallToolResult, PredictOutput, error) {
	form := domain.DefaultFormInput()
	for name, v := range input.Numeric {
		form.Numeric[name] = v
	}
	for column, label := range input.Categorical {
		form.Categorical[column] = label
	}

	p, err := s.ports.Prediction.Predict(ctx, form)
	if err != nil {
		return nil, PredictOutput{}, toolError(err)
	}
	return nil, newPredictOutput(p), nil
}

func (s *Server) handlePredictEncoded(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PredictEncodedInput,
) (*mcp.CallToolResult, PredictOutput, error) {
	raw := make(map[string]any, len(input.Features))
	for name, v := range input.Features {
		raw[name] = v
	}

	p, err := s.ports.Prediction.PredictRaw(ctx, raw)
	if err != nil {
		return nil, PredictOutput{}, toolError(err)
	}
	return nil, newPredictOutput(p), nil
}

func (s *Server) handleListCategories(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CategoriesInput,
) (*mcp.CallToolResult, CategoriesOutput, error) {
	columns := []string{input.Column}
	if input.Column == "" {
		encoders, err := s.ports.Artifacts.Encoders()
		if err != nil {
			return nil, CategoriesOutput{}, toolError(err)
		}
		columns = encoders.Columns()
	}

	out := CategoriesOutput{Categories: make(map[string][]string, len(columns))}
	for _, column := range columns {
		labels, err := s.ports.Prediction.Categories(column)
		if err != nil {
			return nil, CategoriesOutput{}, toolError(err)
		}
		out.Categories[column] = labels
	}
	return nil, out, nil
}

func (s *Server) handleImportances(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ImportancesInput,
) (*mcp.CallToolResult, ImportancesOutput, error) {
	imps, err := s.ports.Prediction.Importances()
	if err != nil {
		return nil, ImportancesOutput{}, toolError(err)
	}
	return nil, ImportancesOutput{Importances: imps}, nil
}

func newPredictOutput(p *domain.Prediction) PredictOutput {
	unseen := append([]string(nil), p.UnseenColumns...)
	sort.Strings(unseen)
	return PredictOutput{
		RequestID:     p.RequestID,
		Yield:         p.Yield,
		Display:       services.FormatYield(p.Yield),
		Clamped:       p.Clamped,
		Advisory:      string(p.Advisory),
		Message:       p.Advisory.Message(),
		Row:           p.Row.Entries(),
		UnseenColumns: unseen,
		Substitutions: p.Substitutions,
	}
}

// toolError adds a hint for the caller to errors it can act on.
func toolError(err error) error {
	switch {
	case errors.Is(err, domain.ErrArtifactUnavailable):
		return fmt.Errorf("model artifacts are not loaded, predictions are disabled: %w", err)
	case errors.Is(err, domain.ErrUnknownColumn):
		return fmt.Errorf("%w (use list_categories for valid columns)", err)
	case errors.Is(err, domain.ErrPredictionFailed):
		return fmt.Errorf("%w (adjust the inputs and retry)", err)
	default:
		return err
	}
}
