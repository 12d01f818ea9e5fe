package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/views/form"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/views/importances"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView        *menu.View
	importancesView *importances.View
	settingsView    *settings.View

	// formView is built once the artifacts are loaded, since its fields
	// come from the feature schema.
	formView *form.View

	// status is the artifact state reported at startup.
	status domain.ArtifactStatus

	// changes delivers artifact paths modified on disk.
	changes <-chan string

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		menuView:        menu.NewView(s),
		importancesView: importances.NewView(s, ports.Prediction),
		settingsView:    settings.NewView(s, ports.Settings),
		currentView:     messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("yieldcast"),
		a.loadArtifacts(),
	)
}

func (a *App) loadArtifacts() tea.Cmd {
	ctx := a.ctx
	artifacts := a.ports.Artifacts
	return func() tea.Msg {
		err := artifacts.Load(ctx)
		return messages.ArtifactsLoaded{Status: artifacts.Status(), Err: err}
	}
}

// waitForChange blocks until the watcher reports a path. It returns nil
// once the channel closes, which ends the chain.
func waitForChange(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return messages.ArtifactChanged{Path: path}
	}
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.ArtifactsLoaded:
		return a, a.handleArtifactsLoaded(msg)

	case messages.ArtifactChanged:
		if a.formView != nil {
			a.formView.Warn(fmt.Sprintf("artifact %s changed on disk, restart to load it", msg.Path))
		}
		if a.changes == nil {
			return a, nil
		}
		return a, waitForChange(a.changes)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.CategoriesLoaded, messages.PredictionCompleted:
		if a.formView != nil {
			a.formView, cmd = a.formView.Update(msg)
		}
		return a, cmd

	case messages.ImportancesLoaded:
		if a.currentView == messages.ViewImportances || a.formView == nil {
			a.importancesView, cmd = a.importancesView.Update(msg)
			return a, cmd
		}
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewForm && a.formView != nil {
			a.formView, cmd = a.formView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewForm:
		if a.formView != nil {
			a.formView, cmd = a.formView.Update(msg)
		}
	case messages.ViewImportances:
		a.importancesView, cmd = a.importancesView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp, messages.ViewUnavailable:
	}
	return a, cmd
}

func (a *App) handleArtifactsLoaded(msg messages.ArtifactsLoaded) tea.Cmd {
	a.status = msg.Status
	if msg.Err != nil || !msg.Status.Ready() {
		a.err = msg.Err
		a.currentView = messages.ViewUnavailable
		return nil
	}

	schema, err := a.ports.Artifacts.Schema()
	if err != nil {
		a.err = err
		a.currentView = messages.ViewUnavailable
		return nil
	}

	a.menuView.SetModel(msg.Status.Source, schema.Len())

	numeric, categorical := domain.FormFields(schema, msg.Status.EncoderColumns)
	a.formView = form.NewView(a.styles, a.keymap, a.ports.Prediction, numeric, categorical).WithContext(a.ctx)
	a.formView.SetSource(msg.Status.Source)
	if a.ready {
		a.formView.SetDimensions(a.width, a.height)
	}

	cmds := []tea.Cmd{a.formView.Init()}
	changes, err := a.ports.Artifacts.Changes(a.ctx)
	if err != nil {
		a.formView.Warn(err.Error())
	} else if changes != nil {
		a.changes = changes
		cmds = append(cmds, waitForChange(changes))
	}
	return tea.Batch(cmds...)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewForm:
		if a.formView != nil {
			a.formView, cmd = a.formView.Update(msg)
		}
	case messages.ViewImportances:
		a.importancesView, cmd = a.importancesView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			return a, a.switchView(messages.ViewMenu)
		}
	case messages.ViewUnavailable:
		switch msg.String() {
		case "q", "esc":
			return a, tea.Quit
		case "s":
			return a, a.switchView(messages.ViewSettings)
		}
	}
	return a, cmd
}

// switchView changes the active view. Views that need the model fall back
// to the diagnostic screen while the artifacts are unavailable.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	if a.formView == nil && (view == messages.ViewMenu || view == messages.ViewForm || view == messages.ViewImportances) {
		a.currentView = messages.ViewUnavailable
		return nil
	}

	a.currentView = view
	switch view {
	case messages.ViewImportances:
		return a.importancesView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewForm, messages.ViewHelp, messages.ViewUnavailable:
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewForm:
		if a.formView != nil {
			return a.formView.View()
		}
		return a.viewUnavailable()
	case messages.ViewImportances:
		return a.importancesView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewUnavailable:
		return a.viewUnavailable()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewUnavailable() string {
	diagnostic := a.status.Diagnostic()
	if a.err != nil && a.status.Err == nil {
		diagnostic = a.err.Error()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("yieldcast"),
		"",
		a.styles.Error.Render("Model artifacts are unavailable, predictions are disabled."),
		"",
		a.styles.Normal.Width(max(a.width-4, 20)).Render(diagnostic),
		"",
		a.styles.Muted.Render("Fix the artifact location and restart yieldcast."),
		"",
		a.styles.Help.Render("[s] settings  [q] quit"),
	)
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Prediction form:
  tab/↓       Next field
  shift+tab/↑ Previous field
  ←/→         Change category
  enter       Predict yield
  ctrl+t      Toggle feature importances
  ctrl+r      Reset to defaults
  esc         Back to Menu

[esc] back to menu`
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Status returns the artifact state reported at startup.
func (a *App) Status() domain.ArtifactStatus {
	return a.status
}

// Form returns the prediction form, or nil before the artifacts load.
func (a *App) Form() *form.View {
	return a.formView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.importancesView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
	if a.formView != nil {
		a.formView.SetDimensions(width, height)
	}
}
