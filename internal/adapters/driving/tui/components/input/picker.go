package input

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

// Picker selects one label of a categorical column. The options are the
// labels the encoder was trained on, so a picked label is never unseen.
type Picker struct {
	styles   *styles.Styles
	field    domain.CategoricalField
	options  []string
	selected int
	focused  bool
}

// NewPicker creates a picker with no options.
func NewPicker(s *styles.Styles, field domain.CategoricalField) *Picker {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Picker{styles: s, field: field}
}

// SetOptions replaces the options and keeps the current label if it is
// still offered.
func (p *Picker) SetOptions(options []string) {
	current := p.Value()
	p.options = append([]string(nil), options...)
	p.selected = 0
	for i, o := range p.options {
		if o == current {
			p.selected = i
			break
		}
	}
}

// Options returns the offered labels.
func (p *Picker) Options() []string {
	return p.options
}

// Next selects the following option, wrapping around.
func (p *Picker) Next() {
	if len(p.options) == 0 {
		return
	}
	p.selected = (p.selected + 1) % len(p.options)
}

// Prev selects the preceding option, wrapping around.
func (p *Picker) Prev() {
	if len(p.options) == 0 {
		return
	}
	p.selected = (p.selected - 1 + len(p.options)) % len(p.options)
}

// Value returns the selected label, or "" with no options.
func (p *Picker) Value() string {
	if len(p.options) == 0 {
		return ""
	}
	return p.options[p.selected]
}

// Select picks label if it is offered.
func (p *Picker) Select(label string) bool {
	for i, o := range p.options {
		if o == label {
			p.selected = i
			return true
		}
	}
	return false
}

// Field returns the form field this picker edits.
func (p *Picker) Field() domain.CategoricalField {
	return p.field
}

// Focus marks the picker as the active field.
func (p *Picker) Focus() {
	p.focused = true
}

// Blur clears the active mark.
func (p *Picker) Blur() {
	p.focused = false
}

// Focused returns whether the picker is the active field.
func (p *Picker) Focused() bool {
	return p.focused
}

// Reset selects the first option.
func (p *Picker) Reset() {
	p.selected = 0
}

// View renders the label and the selected option between arrows.
func (p *Picker) View() string {
	label := p.styles.Label.Render(p.field.Label)
	value := p.styles.Muted.Render("(no labels)")
	if len(p.options) > 0 {
		value = fmt.Sprintf("‹ %s ›", p.Value())
		if p.focused {
			label = p.styles.FocusedLabel.Render(p.field.Label)
			value = p.styles.Selected.Render(value)
		} else {
			value = p.styles.Normal.Render(value)
		}
	}
	count := p.styles.Muted.Render(fmt.Sprintf(" %d/%d", p.selected+1, len(p.options)))
	if len(p.options) == 0 {
		count = ""
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, value, count)
}
