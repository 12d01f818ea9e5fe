// Package menu provides the start screen of the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/styles"
)

// Entry is one menu line. Shortcut opens it directly.
type Entry struct {
	Label    string
	Hint     string
	Shortcut string
	View     messages.ViewType
	Quit     bool
}

// View is the start menu.
type View struct {
	styles   *styles.Styles
	entries  []Entry
	cursor   int
	source   string
	features int
	width    int
	height   int
	ready    bool
}

// NewView creates the menu with the default entries.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		entries: []Entry{
			{Label: "Predict Yield", Hint: "fill in the form and run the model", Shortcut: "p", View: messages.ViewForm},
			{Label: "Feature Importances", Hint: "split counts per feature", Shortcut: "i", View: messages.ViewImportances},
			{Label: "Settings", Hint: "artifact location and display", Shortcut: "s", View: messages.ViewSettings},
			{Label: "Help", Shortcut: "?", View: messages.ViewHelp},
			{Label: "Quit", Shortcut: "q", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init implements the view contract. The menu loads nothing.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles navigation and shortcuts.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.entries)-1 {
				v.cursor++
			}
		case "enter":
			return v, v.open(v.entries[v.cursor])
		default:
			for i, e := range v.entries {
				if e.Shortcut == key {
					v.cursor = i
					return v, v.open(e)
				}
			}
		}
	}

	return v, nil
}

func (v *View) open(e Entry) tea.Cmd {
	if e.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: e.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("yieldcast"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Crop Yield Estimates (kg/ha)"))
	b.WriteString("\n\n")

	for i, e := range v.entries {
		cursor := "  "
		label := v.styles.Normal.Render(e.Label)
		if i == v.cursor {
			cursor = "> "
			label = v.styles.Subtitle.Render(e.Label)
		}
		fmt.Fprintf(&b, "%s[%s] %s", cursor, e.Shortcut, label)
		if e.Hint != "" {
			b.WriteString("  " + v.styles.Muted.Render(e.Hint))
		}
		b.WriteString("\n")
	}

	if v.source != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Model: %s (%d features)", v.source, v.features)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] move  [enter] open  [q] quit"))
	return b.String()
}

// SetModel records where the loaded artifacts came from.
func (v *View) SetModel(source string, features int) {
	v.source = source
	v.features = features
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Cursor returns the highlighted entry index.
func (v *View) Cursor() int {
	return v.cursor
}

// Entries returns the menu entries.
func (v *View) Entries() []Entry {
	return v.entries
}
