// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driving"
)

// ErrNoSettingsService is returned when the view has no settings service.
var ErrNoSettingsService = errors.New("settings service not available")

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionArtifactDir
	SectionBundle
	SectionThreshold
	SectionLogLevel
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
)

var overviewSections = []Section{
	SectionArtifactDir,
	SectionBundle,
	SectionThreshold,
	SectionLogLevel,
}

var logLevels = []domain.LogLevel{
	domain.LogLevelDebug,
	domain.LogLevelInfo,
	domain.LogLevelWarn,
	domain.LogLevelError,
}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	saved    bool

	section  Section
	selected int

	// input edits the artifact directory, bundle path and threshold.
	input textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	input := textinput.New()
	input.CharLimit = 512
	input.Width = 60

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		input:           input,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.saved = true
		v.closeSection()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.closeSection()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionLogLevel:
		return v.handleLogLevelKeys(msg)
	case SectionArtifactDir, SectionBundle, SectionThreshold:
		return v.handleInputKeys(msg)
	}
	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(overviewSections)-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		return v, v.openSection(overviewSections[v.selected])
	}
	return v, nil
}

func (v *View) handleLogLevelKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(logLevels)-1 {
			v.selected++
		}
	case keyEnter:
		level := logLevels[v.selected]
		return v, v.save(func(svc driving.SettingsService) error {
			return svc.SetLogLevel(level)
		})
	}
	return v, nil
}

func (v *View) handleInputKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() != keyEnter {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	value := strings.TrimSpace(v.input.Value())
	switch v.section {
	case SectionArtifactDir:
		if value == "" {
			v.err = fmt.Errorf("%w: artifact directory is required", domain.ErrInvalidInput)
			return v, nil
		}
		return v, v.save(func(svc driving.SettingsService) error {
			return svc.SetArtifactDir(value)
		})
	case SectionBundle:
		return v, v.save(func(svc driving.SettingsService) error {
			return svc.SetBundle(value)
		})
	case SectionThreshold:
		threshold, err := strconv.ParseFloat(value, 64)
		if err != nil {
			v.err = fmt.Errorf("%w: threshold must be a number", domain.ErrInvalidInput)
			return v, nil
		}
		return v, v.save(func(svc driving.SettingsService) error {
			return svc.SetLowYieldThreshold(threshold)
		})
	}
	return v, nil
}

func (v *View) openSection(section Section) tea.Cmd {
	v.section = section
	v.saved = false
	v.err = nil

	switch section {
	case SectionLogLevel:
		v.selected = v.logLevelIndex()
		return nil
	case SectionArtifactDir:
		v.input.Placeholder = "models"
		v.input.SetValue(v.settings.Artifacts.Dir)
	case SectionBundle:
		v.input.Placeholder = "leave empty to load files"
		v.input.SetValue(v.settings.Artifacts.Bundle)
	case SectionThreshold:
		v.input.Placeholder = "kg/ha"
		v.input.SetValue(strconv.FormatFloat(v.settings.Display.LowYieldThreshold, 'f', -1, 64))
	}
	v.input.CursorEnd()
	return v.input.Focus()
}

func (v *View) closeSection() {
	if v.section != SectionOverview {
		v.selected = int(v.section) - 1
	}
	v.section = SectionOverview
	v.input.Blur()
	v.input.SetValue("")
}

func (v *View) save(apply func(driving.SettingsService) error) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Err: apply(v.settingsService)}
	}
}

func (v *View) logLevelIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, l := range logLevels {
		if l == v.settings.Log.Level {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionLogLevel:
		b.WriteString(v.renderLogLevelSelect())
	case SectionArtifactDir, SectionBundle, SectionThreshold:
		b.WriteString(v.renderInput())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	bundle := "Not Set"
	if v.settings.Artifacts.UsesBundle() {
		bundle = v.settings.Artifacts.Bundle
	}

	items := []struct {
		label string
		value string
	}{
		{"Artifact Directory", v.settings.Artifacts.Dir},
		{"Bundle", bundle},
		{"Low Yield Threshold", fmt.Sprintf("%g kg/ha", v.settings.Display.LowYieldThreshold)},
		{"Log Level", v.settings.Log.Level.Description()},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%s: %s", indicator, item.label, item.value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.saved {
		b.WriteString(v.styles.Muted.Render("Saved. Artifact changes apply on next start."))
		b.WriteString("\n")
	}
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
	}

	return b.String()
}

func (v *View) renderLogLevelSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Log Level"))
	b.WriteString("\n\n")

	for i, level := range logLevels {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		current := ""
		if level == v.settings.Log.Level {
			current = v.styles.Success.Render(" (current)")
		}
		line := fmt.Sprintf("%s%s%s", indicator, level.Description(), current)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderInput() string {
	var title string
	switch v.section {
	case SectionArtifactDir:
		title = "Artifact Directory"
	case SectionBundle:
		title = "SQLite Bundle"
	case SectionThreshold:
		title = "Low Yield Threshold (kg/ha)"
	}
	return v.styles.Subtitle.Render(title) + "\n\n" + v.input.View() + "\n"
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionLogLevel:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	default:
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.err = nil
	v.saved = false
	v.input.SetValue("")
	v.input.Blur()
}
