package driving

import (
	"context"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

// PredictionService turns form input into a yield estimate.
type PredictionService interface {
	// Encode maps a categorical label to its trained code, or UnseenCode.
	Encode(column, label string) (int, error)

	// Categories returns the known labels for a categorical column.
	Categories(column string) ([]string, error)

	// Assemble builds the ordered feature row from raw values.
	Assemble(raw map[string]any) (domain.Row, []domain.Substitution, error)

	// Predict encodes, assembles and evaluates one form input.
	Predict(ctx context.Context, input domain.FormInput) (*domain.Prediction, error)

	// PredictRaw evaluates raw values whose categoricals are already encoded.
	PredictRaw(ctx context.Context, raw map[string]any) (*domain.Prediction, error)

	// Importances returns feature importances sorted ascending by score.
	Importances() ([]domain.FeatureImportance, error)
}
