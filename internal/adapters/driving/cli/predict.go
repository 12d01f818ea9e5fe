package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/services"
)

var (
	predictSet         []string
	predictCategory    []string
	predictEncoded     bool
	predictJSON        bool
	predictImportances bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Estimate crop yield for one set of inputs",
	Long: `Estimate crop yield in kg/ha.

Numeric inputs start from the form defaults and are overridden with
--set. Categorical inputs are given as human-readable labels with
--category and encoded with the trained label encoders. Labels the
encoders have never seen are encoded as -1.

With --encoded, --set supplies the complete feature row, categorical
codes included, and no defaults are applied. Missing or non-numeric
values are replaced by 0.

Examples:
  yieldcast predict --category Crop=Rice --category Season=Kharif \
    --set Rainfall_mm=850 --set Soil_pH=6.5

  yieldcast predict --encoded --set Rainfall_mm=850 --set Crop_Encoded=4`,
	Args: cobra.NoArgs,
	RunE: runPredict,
}

func init() {
	definePredictFlags()
	rootCmd.AddCommand(predictCmd)
}

func definePredictFlags() {
	flags := predictCmd.Flags()
	flags.StringArrayVar(&predictSet, "set", nil, "feature value as Name=value (repeatable)")
	flags.StringArrayVar(&predictCategory, "category", nil, "categorical label as Column=Label (repeatable)")
	flags.BoolVar(&predictEncoded, "encoded", false, "treat --set as the complete encoded feature row")
	flags.BoolVar(&predictJSON, "json", false, "output the prediction as JSON")
	flags.BoolVar(&predictImportances, "importances", false, "also print feature importances")
}

// predictionOutput is the JSON shape of a prediction.
type predictionOutput struct {
	*domain.Prediction
	Display     string                     `json:"display"`
	Message     string                     `json:"message,omitempty"`
	Importances []domain.FeatureImportance `json:"importances,omitempty"`
}

func runPredict(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := loadArtifacts(ctx); err != nil {
		return err
	}

	sets, err := parseAssignments(predictSet)
	if err != nil {
		return err
	}
	categories, err := parseAssignments(predictCategory)
	if err != nil {
		return err
	}

	var prediction *domain.Prediction
	if predictEncoded {
		if len(categories) > 0 {
			return errors.New("--category cannot be combined with --encoded")
		}
		raw := make(map[string]any, len(sets))
		for name, value := range sets {
			raw[name] = value
		}
		prediction, err = predictionService.PredictRaw(ctx, raw)
	} else {
		var input domain.FormInput
		input, err = buildFormInput(sets, categories)
		if err != nil {
			return err
		}
		prediction, err = predictionService.Predict(ctx, input)
	}
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	var importances []domain.FeatureImportance
	var importanceErr error
	if predictImportances {
		importances, importanceErr = predictionService.Importances()
	}

	if predictJSON {
		if importanceErr != nil {
			cmd.PrintErrf("Warning: %v\n", importanceErr)
		}
		return outputPredictionJSON(cmd, prediction, importances)
	}

	outputPrediction(cmd, prediction)
	if predictImportances {
		cmd.Println()
		outputImportances(cmd, importances, importanceErr)
	}
	return nil
}

// buildFormInput applies overrides to the default form.
func buildFormInput(sets, categories map[string]string) (domain.FormInput, error) {
	input := domain.DefaultFormInput()
	fields := make(map[string]domain.NumericField)
	for _, f := range domain.DefaultNumericFields() {
		fields[f.Name] = f
	}

	for name, value := range sets {
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return domain.FormInput{}, fmt.Errorf("%w: %s=%q is not a number", domain.ErrInvalidInput, name, value)
		}
		if f, ok := fields[name]; ok {
			if err := f.Validate(v); err != nil {
				return domain.FormInput{}, err
			}
		}
		input.Numeric[name] = v
	}
	for column, label := range categories {
		input.Categorical[column] = label
	}
	return input, nil
}

// parseAssignments splits Name=value pairs. Later pairs win.
func parseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: expected Name=value, got %q", domain.ErrInvalidInput, pair)
		}
		out[name] = value
	}
	return out, nil
}

func outputPrediction(cmd *cobra.Command, p *domain.Prediction) {
	if p.Row.Len() > 0 {
		cmd.Println("Input summary:")
		for _, line := range rowSummary(p) {
			cmd.Println("  " + line)
		}
		cmd.Println()
	}
	cmd.Printf("Predicted yield: %s\n", services.FormatYield(p.Yield))
	if msg := p.Advisory.Message(); msg != "" {
		cmd.Printf("Note: %s\n", msg)
	}
	if len(p.UnseenColumns) > 0 {
		unseen := append([]string(nil), p.UnseenColumns...)
		sort.Strings(unseen)
		cmd.Printf("Unseen labels encoded as %d: %s\n", domain.UnseenCode, strings.Join(unseen, ", "))
	}
}

// rowSummary lists the features the model received in schema order.
// Substituted features carry the substitution reason.
func rowSummary(p *domain.Prediction) []string {
	reasons := make(map[string]domain.SubstitutionReason, len(p.Substitutions))
	for _, sub := range p.Substitutions {
		reasons[sub.Feature] = sub.Reason
	}

	entries := p.Row.Entries()
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("%-*s  %s", width, e.Name, strconv.FormatFloat(e.Value, 'f', -1, 64))
		if reason, ok := reasons[e.Name]; ok {
			line += fmt.Sprintf("  (%s)", reason)
		}
		lines = append(lines, line)
	}
	return lines
}

func outputPredictionJSON(cmd *cobra.Command, p *domain.Prediction, importances []domain.FeatureImportance) error {
	out := predictionOutput{
		Prediction:  p,
		Display:     services.FormatYield(p.Yield),
		Message:     p.Advisory.Message(),
		Importances: importances,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
