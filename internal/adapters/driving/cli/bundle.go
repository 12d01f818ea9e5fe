package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var bundleOut string

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Artifact bundle commands",
	Long:  `Commands for packing the model artifacts into a single SQLite file.`,
}

var bundleCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Pack the artifact files into a SQLite bundle",
	Long: `Read the configured model, label encoders and feature list, check
that they agree, and write them into one SQLite file.

Point yieldcast at the result with --bundle or 'yieldcast settings bundle'.

Example:
  yieldcast bundle create --artifacts ./models --out yieldcast.db`,
	Args: cobra.NoArgs,
	RunE: runBundleCreate,
}

func init() {
	bundleCreateCmd.Flags().StringVarP(&bundleOut, "out", "o", "yieldcast.db", "bundle file to write")
	bundleCmd.AddCommand(bundleCreateCmd)
	rootCmd.AddCommand(bundleCmd)
}

func runBundleCreate(cmd *cobra.Command, _ []string) error {
	if exportBundle == nil {
		return errors.New("bundle export not configured")
	}
	if bundleOut == "" {
		return errors.New("--out must not be empty")
	}

	if err := exportBundle(cmd.Context(), bundleOut); err != nil {
		return fmt.Errorf("bundle create failed: %w", err)
	}
	cmd.Printf("Wrote bundle %s\n", bundleOut)
	return nil
}
