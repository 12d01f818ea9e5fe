package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/services"
)

// barWidth is the length of the longest importance bar.
const barWidth = 40

var importancesJSON bool

var importancesCmd = &cobra.Command{
	Use:   "importances",
	Short: "Show the model's feature importances",
	Long: `Show how often the model splits on each feature, lowest first.

Models that carry no importance scores print a warning instead.`,
	Args: cobra.NoArgs,
	RunE: runImportances,
}

func init() {
	importancesCmd.Flags().BoolVar(&importancesJSON, "json", false, "output importances as JSON")
	rootCmd.AddCommand(importancesCmd)
}

func runImportances(cmd *cobra.Command, _ []string) error {
	if err := loadArtifacts(cmd.Context()); err != nil {
		return err
	}

	importances, err := predictionService.Importances()
	if importancesJSON {
		if err != nil {
			cmd.PrintErrf("Warning: %v\n", err)
			importances = []domain.FeatureImportance{}
		}
		data, mErr := json.MarshalIndent(importances, "", "  ")
		if mErr != nil {
			return fmt.Errorf("failed to marshal importances: %w", mErr)
		}
		cmd.Println(string(data))
		return nil
	}

	outputImportances(cmd, importances, err)
	return nil
}

// outputImportances prints a horizontal bar chart, or a warning if the
// model has no importances.
func outputImportances(cmd *cobra.Command, importances []domain.FeatureImportance, err error) {
	if err != nil {
		cmd.Printf("Warning: %v\n", err)
		return
	}

	cmd.Println("Feature importances:")
	cmd.Println()
	for _, line := range importanceBars(importances, barWidth) {
		cmd.Println("  " + line)
	}
}

// importanceBars renders one line per feature with a bar scaled to the
// highest score.
func importanceBars(importances []domain.FeatureImportance, width int) []string {
	nameWidth := 0
	maxScore := 0.0
	for _, imp := range importances {
		nameWidth = max(nameWidth, len(imp.Name))
		maxScore = max(maxScore, imp.Score)
	}

	lines := make([]string, 0, len(importances))
	for _, imp := range importances {
		n := 0
		if maxScore > 0 && imp.Score > 0 {
			n = max(1, int(imp.Score/maxScore*float64(width)+0.5))
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %s",
			nameWidth, imp.Name, strings.Repeat("#", n)+strings.Repeat(" ", width-n), services.FormatScore(imp.Score)))
	}
	return lines
}
