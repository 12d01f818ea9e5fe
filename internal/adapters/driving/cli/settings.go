package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

var bundleClear bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure where the model artifacts are loaded from, the
low-yield advisory threshold and the log level.

Use subcommands to change a single setting or run the interactive wizard.
Environment variables prefixed with YIELDCAST_ take precedence over the
config file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsArtifactsCmd = &cobra.Command{
	Use:   "artifacts [dir]",
	Short: "Set the artifact directory",
	Long: `Set the directory holding lgbm_model.txt, label_encoders.json and
features_list.json. Relative file names are resolved against it.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsArtifacts,
}

var settingsBundleCmd = &cobra.Command{
	Use:   "bundle [path]",
	Short: "Load artifacts from a SQLite bundle",
	Long: `Select a SQLite bundle created with 'yieldcast bundle create'.
When a bundle is set it takes precedence over the artifact files.
Use --clear to go back to the files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsBundle,
}

var settingsThresholdCmd = &cobra.Command{
	Use:   "threshold [kg/ha]",
	Short: "Set the low-yield advisory threshold",
	Long:  `Predictions below this yield show a low-yield advisory. The default is 100 kg/ha.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsThreshold,
}

var settingsLogLevelCmd = &cobra.Command{
	Use:   "log-level [level]",
	Short: "Set the log level",
	Long: `Set the minimum level written to the log.

Available levels:
  debug - Substitutions, encodings and timings
  info  - Artifact loads and predictions (default)
  warn  - Unseen labels, artifact changes
  error - Failures only`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsLogLevel,
}

func init() {
	settingsBundleCmd.Flags().BoolVar(&bundleClear, "clear", false, "stop using a bundle")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsArtifactsCmd)
	settingsCmd.AddCommand(settingsBundleCmd)
	settingsCmd.AddCommand(settingsThresholdCmd)
	settingsCmd.AddCommand(settingsLogLevelCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Artifacts]")
	if settings.Artifacts.UsesBundle() {
		cmd.Printf("  Bundle: %s\n", settings.Artifacts.Bundle)
	} else {
		cmd.Printf("  Directory: %s\n", settings.Artifacts.Dir)
		cmd.Printf("  Model: %s\n", settings.Artifacts.ModelPath())
		cmd.Printf("  Encoders: %s\n", settings.Artifacts.EncodersPath())
		cmd.Printf("  Features: %s\n", settings.Artifacts.FeaturesPath())
	}
	cmd.Println()

	cmd.Println("[Display]")
	cmd.Printf("  Low yield threshold: %g %s\n", settings.Display.LowYieldThreshold, domain.YieldUnit)
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Level: %s\n", settings.Log.Level.Description())
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'yieldcast settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("yieldcast Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Artifact location
	cmd.Println("Step 1: Artifact Directory")
	cmd.Println("--------------------------")
	cmd.Printf("Enter directory [%s]: ", settings.Artifacts.Dir)
	if dir := readLine(reader); dir != "" {
		settings.Artifacts.Dir = dir
	}
	cmd.Println()

	// Step 2: Advisory threshold
	cmd.Println("Step 2: Low Yield Threshold")
	cmd.Println("---------------------------")
	cmd.Printf("Enter threshold in %s [%g]: ", domain.YieldUnit, settings.Display.LowYieldThreshold)
	if input := readLine(reader); input != "" {
		threshold, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return fmt.Errorf("%w: threshold %q is not a number", domain.ErrInvalidInput, input)
		}
		settings.Display.LowYieldThreshold = threshold
	}
	cmd.Println()

	// Step 3: Log level
	cmd.Println("Step 3: Log Level")
	cmd.Println("-----------------")
	levels := []domain.LogLevel{domain.LogLevelDebug, domain.LogLevelInfo, domain.LogLevelWarn, domain.LogLevelError}
	current := 2
	for i, l := range levels {
		cmd.Printf("  %d. %s\n", i+1, l.Description())
		if l == settings.Log.Level {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	idx := parseChoice(readLine(reader), len(levels), current)
	settings.Log.Level = levels[idx-1]
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("All settings are valid and saved.")
	return nil
}

func runSettingsArtifacts(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.SetArtifactDir(args[0]); err != nil {
		return fmt.Errorf("failed to set artifact directory: %w", err)
	}
	cmd.Printf("Artifact directory set to: %s\n", args[0])
	return nil
}

func runSettingsBundle(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	path := ""
	switch {
	case bundleClear:
	case len(args) == 1:
		path = args[0]
	default:
		return errors.New("bundle path required (or --clear)")
	}

	if err := settingsService.SetBundle(path); err != nil {
		return fmt.Errorf("failed to set bundle: %w", err)
	}
	if path == "" {
		cmd.Println("Bundle cleared, artifacts load from files.")
	} else {
		cmd.Printf("Bundle set to: %s\n", path)
	}
	return nil
}

func runSettingsThreshold(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	threshold, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return fmt.Errorf("%w: threshold %q is not a number", domain.ErrInvalidInput, args[0])
	}
	if err := settingsService.SetLowYieldThreshold(threshold); err != nil {
		return fmt.Errorf("failed to set threshold: %w", err)
	}
	cmd.Printf("Low yield threshold set to: %g %s\n", threshold, domain.YieldUnit)
	return nil
}

func runSettingsLogLevel(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	level, err := domain.ParseLogLevel(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetLogLevel(level); err != nil {
		return fmt.Errorf("failed to set log level: %w", err)
	}
	cmd.Printf("Log level set to: %s\n", level)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
