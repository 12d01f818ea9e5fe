package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui"
	"github.com/custodia-labs/yieldcast/internal/logger"
)

// ErrNoTerminal is returned when the TUI is started without a terminal.
var ErrNoTerminal = errors.New("tui requires a terminal, use predict for scripted runs")

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	// LogFile receives log output while the TUI owns the screen.
	// Logs are discarded when empty.
	LogFile string
}

var tuiConfig *TUIConfig

// isTerminal reports whether stdin is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive yield estimation form.

The form lists every model feature with sensible defaults. Categorical
fields cycle through the labels the model was trained on.

Controls:
  tab/shift+tab - Move between fields
  ←/→           - Change category
  enter         - Predict yield
  ctrl+t        - Toggle feature importances
  ctrl+r        - Reset to defaults
  esc           - Back to menu
  ctrl+c        - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(artifactService, predictionService, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	if !isTerminal() {
		return ErrNoTerminal
	}

	restore, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restore()

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLogs keeps log lines off the alternate screen.
func redirectLogs() (func(), error) {
	if tuiConfig == nil || tuiConfig.LogFile == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }, nil
	}

	if err := os.MkdirAll(filepath.Dir(tuiConfig.LogFile), 0o700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(tuiConfig.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
