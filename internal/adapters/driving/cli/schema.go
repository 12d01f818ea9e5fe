package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var schemaJSON bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the feature schema and categorical labels",
	Long: `Show the features the model expects, in order, and the labels each
categorical column accepts.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaJSON, "json", false, "output the schema as JSON")
	rootCmd.AddCommand(schemaCmd)
}

// schemaOutput is the JSON shape of the schema command.
type schemaOutput struct {
	Source     string              `json:"source"`
	Features   []string            `json:"features"`
	Categories map[string][]string `json:"categories"`
}

func runSchema(cmd *cobra.Command, _ []string) error {
	if err := loadArtifacts(cmd.Context()); err != nil {
		return err
	}

	schema, err := artifactService.Schema()
	if err != nil {
		return err
	}
	encoders, err := artifactService.Encoders()
	if err != nil {
		return err
	}

	out := schemaOutput{
		Source:     artifactService.Status().Source,
		Features:   schema.Names(),
		Categories: make(map[string][]string, len(encoders)),
	}
	for _, column := range encoders.Columns() {
		out.Categories[column] = encoders[column].Classes()
	}

	if schemaJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Artifacts: %s\n", out.Source)
	cmd.Println()
	cmd.Printf("Features (%d):\n", len(out.Features))
	for i, name := range out.Features {
		cmd.Printf("  %2d. %s\n", i+1, name)
	}
	cmd.Println()
	cmd.Println("Categories:")
	for _, column := range encoders.Columns() {
		cmd.Printf("  %s (%d): %s\n", column, len(out.Categories[column]), strings.Join(out.Categories[column], ", "))
	}
	return nil
}
