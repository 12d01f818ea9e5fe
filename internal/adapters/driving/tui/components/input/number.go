// Package input provides form input components for the TUI.
package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

// NumberInput wraps a bubbles textinput for one numeric form field.
type NumberInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	field     domain.NumericField
}

// NewNumberInput creates an input holding the field's default.
func NewNumberInput(s *styles.Styles, field domain.NumericField) *NumberInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = formatNumber(field.Default)
	ti.CharLimit = 24
	ti.Width = 16

	n := &NumberInput{
		textinput: ti,
		styles:    s,
		field:     field,
	}
	n.Reset()
	return n
}

// Init initialises the input.
func (n *NumberInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (n *NumberInput) Update(msg tea.Msg) (*NumberInput, tea.Cmd) {
	var cmd tea.Cmd
	n.textinput, cmd = n.textinput.Update(msg)
	return n, cmd
}

// View renders the label, the input and the accepted range.
func (n *NumberInput) View() string {
	label := n.styles.Label.Render(n.field.Label)
	if n.Focused() {
		label = n.styles.FocusedLabel.Render(n.field.Label)
	}

	hint := n.styles.Muted.Render(fmt.Sprintf(" %s to %s", formatNumber(n.field.Min), formatNumber(n.field.Max)))
	if _, err := n.Value(); err != nil && strings.TrimSpace(n.textinput.Value()) != "" {
		hint = n.styles.Error.Render(" " + err.Error())
	}

	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, n.styles.InputField.Render(n.textinput.View()), hint)
}

// Value parses and validates the entered number.
func (n *NumberInput) Value() (float64, error) {
	raw := strings.TrimSpace(n.textinput.Value())
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, n.field.Label)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, n.field.Label)
	}
	if err := n.field.Validate(v); err != nil {
		return 0, err
	}
	return v, nil
}

// SetValue replaces the entered text with v.
func (n *NumberInput) SetValue(v float64) {
	n.textinput.SetValue(formatNumber(v))
}

// Field returns the form field this input edits.
func (n *NumberInput) Field() domain.NumericField {
	return n.field
}

// Focus sets focus on the input.
func (n *NumberInput) Focus() tea.Cmd {
	return n.textinput.Focus()
}

// Blur removes focus from the input.
func (n *NumberInput) Blur() {
	n.textinput.Blur()
}

// Focused returns whether the input is focused.
func (n *NumberInput) Focused() bool {
	return n.textinput.Focused()
}

// Reset restores the field default.
func (n *NumberInput) Reset() {
	n.SetValue(n.field.Default)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
