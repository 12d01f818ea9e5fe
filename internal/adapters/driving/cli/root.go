package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/yieldcast/internal/core/ports/driving"
	"github.com/custodia-labs/yieldcast/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Global flags.
var (
	verbose      bool
	configPath   string
	artifactsDir string
	bundlePath   string
)

// Services used by the commands. Set by Bootstrap or directly in tests.
var (
	artifactService   driving.ArtifactService
	predictionService driving.PredictionService
	settingsService   driving.SettingsService
	exportBundle      BundleExporter
)

// BundleExporter writes the configured artifacts into a SQLite bundle at out.
type BundleExporter func(ctx context.Context, out string) error

// Options carries the global flags to the bootstrap function.
type Options struct {
	// ConfigPath overrides the config file location.
	ConfigPath string

	// ArtifactsDir overrides the configured artifact directory.
	ArtifactsDir string

	// Bundle selects a SQLite artifact bundle instead of the files.
	Bundle string

	// Verbose enables debug logging.
	Verbose bool
}

// Services holds the core services wired by the entry point.
type Services struct {
	Artifacts  driving.ArtifactService
	Prediction driving.PredictionService
	Settings   driving.SettingsService
	Export     BundleExporter
}

// Bootstrap builds the services once the global flags are parsed.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var bootstrap Bootstrap

// SetBootstrap registers the function that wires the services.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "yieldcast",
	Short: "Crop yield estimates from a trained gradient-boosted model",
	Long: `yieldcast estimates crop yield in kg/ha from environmental, soil,
fertilizer and categorical inputs using a pre-trained LightGBM model.

Run 'yieldcast tui' for the interactive form, or 'yieldcast predict'
for a one-shot estimate.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&configPath, "config", "", "config file (default ~/.yieldcast/config.toml)")
	flags.StringVar(&artifactsDir, "artifacts", "", "directory holding the model artifacts")
	flags.StringVar(&bundlePath, "bundle", "", "SQLite artifact bundle to load instead of the files")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if bootstrap == nil {
		return nil
	}

	services, err := bootstrap(cmd.Context(), Options{
		ConfigPath:   configPath,
		ArtifactsDir: artifactsDir,
		Bundle:       bundlePath,
		Verbose:      verbose,
	})
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	artifactService = services.Artifacts
	predictionService = services.Prediction
	settingsService = services.Settings
	exportBundle = services.Export
	return nil
}

// loadArtifacts loads the artifacts before any prediction is attempted.
func loadArtifacts(ctx context.Context) error {
	if artifactService == nil || predictionService == nil {
		return errors.New("prediction service not configured")
	}
	if err := artifactService.Load(ctx); err != nil {
		return fmt.Errorf("cannot start: %w", err)
	}
	return nil
}
