// Package form provides the prediction form view for the TUI.
package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/components/chart"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driving"
	"github.com/custodia-labs/yieldcast/internal/core/services"
)

// ErrNoPredictionService is returned when the view has no prediction service.
var ErrNoPredictionService = errors.New("prediction service not available")

// sideBySideWidth is the terminal width from which the result is drawn
// next to the fields instead of below them.
const sideBySideWidth = 110

// View is the prediction form: numeric inputs, category pickers, the
// last result and an optional importance chart.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar
	chart     *chart.Importance

	prediction driving.PredictionService
	ctx        context.Context

	numbers []*input.NumberInput
	pickers []*input.Picker
	focus   int

	result          *domain.Prediction
	err             error
	predicting      bool
	showImportances bool
	importancesErr  error
	importancesDone bool

	width  int
	height int
	ready  bool
}

// NewView creates a form for the given fields.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	prediction driving.PredictionService,
	numeric []domain.NumericField,
	categorical []domain.CategoricalField,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:     s,
		keymap:     km,
		statusbar:  status.NewBar(s, km),
		chart:      chart.NewImportance(s),
		prediction: prediction,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
	for _, f := range numeric {
		v.numbers = append(v.numbers, input.NewNumberInput(s, f))
	}
	for _, f := range categorical {
		v.pickers = append(v.pickers, input.NewPicker(s, f))
	}
	v.statusbar.SetFormHints(true)
	v.applyFocus()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the picker options.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.loadCategories(), v.applyFocus())
}

// loadCategories fetches the known labels of every picker column.
func (v *View) loadCategories() tea.Cmd {
	columns := make([]string, 0, len(v.pickers))
	for _, p := range v.pickers {
		columns = append(columns, p.Field().Column)
	}
	return func() tea.Msg {
		if v.prediction == nil {
			return messages.CategoriesLoaded{Err: ErrNoPredictionService}
		}
		options := make(map[string][]string, len(columns))
		var errs []error
		for _, column := range columns {
			labels, err := v.prediction.Categories(column)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			options[column] = labels
		}
		return messages.CategoriesLoaded{Options: options, Err: errors.Join(errs...)}
	}
}

// Update handles messages for the form view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CategoriesLoaded:
		for _, p := range v.pickers {
			p.SetOptions(msg.Options[p.Field().Column])
		}
		if msg.Err != nil {
			v.statusbar.SetState(status.StateReady)
			v.statusbar.SetMessage(msg.Err.Error())
		}
		return v, nil

	case messages.PredictionCompleted:
		v.handlePredictionCompleted(msg)
		return v, nil

	case messages.ImportancesLoaded:
		v.importancesDone = true
		v.importancesErr = msg.Err
		v.chart.SetImportances(msg.Importances)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if n := v.focusedNumber(); n != nil {
		var cmd tea.Cmd
		_, cmd = n.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(keyStr, v.keymap.Predict):
		if v.predicting {
			return v, nil
		}
		return v, v.submit()

	case keymap.Matches(keyStr, v.keymap.Importances):
		v.showImportances = !v.showImportances
		if v.showImportances && !v.importancesDone {
			return v, v.loadImportances()
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Reset):
		v.Reset()
		return v, v.applyFocus()

	case keymap.Matches(keyStr, v.keymap.NextField):
		v.focus = (v.focus + 1) % v.fieldCount()
		return v, v.applyFocus()

	case keymap.Matches(keyStr, v.keymap.PrevField):
		v.focus = (v.focus - 1 + v.fieldCount()) % v.fieldCount()
		return v, v.applyFocus()
	}

	if p := v.focusedPicker(); p != nil {
		switch {
		case keymap.Matches(keyStr, v.keymap.NextOption):
			p.Next()
		case keymap.Matches(keyStr, v.keymap.PrevOption):
			p.Prev()
		}
		return v, nil
	}

	if n := v.focusedNumber(); n != nil {
		var cmd tea.Cmd
		_, cmd = n.Update(msg)
		return v, cmd
	}
	return v, nil
}

// submit validates the form and starts a prediction.
func (v *View) submit() tea.Cmd {
	in, err := v.Input()
	if err != nil {
		v.err = err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(err.Error())
		return v.applyFocus()
	}

	v.err = nil
	v.predicting = true
	v.statusbar.SetState(status.StatePredicting)
	v.statusbar.SetMessage("")

	return func() tea.Msg {
		if v.prediction == nil {
			return messages.PredictionCompleted{Err: ErrNoPredictionService}
		}
		p, err := v.prediction.Predict(v.ctx, in)
		return messages.PredictionCompleted{Prediction: p, Err: err}
	}
}

// Input collects the form values. On the first invalid number it moves
// the focus there and returns the validation error.
func (v *View) Input() (domain.FormInput, error) {
	in := domain.FormInput{
		Numeric:     make(map[string]float64, len(v.numbers)),
		Categorical: make(map[string]string, len(v.pickers)),
	}
	for i, n := range v.numbers {
		value, err := n.Value()
		if err != nil {
			v.focus = i
			return domain.FormInput{}, err
		}
		in.Numeric[n.Field().Name] = value
	}
	for _, p := range v.pickers {
		// A picker without options leaves the column to be encoded as unseen.
		if label := p.Value(); label != "" {
			in.Categorical[p.Field().Column] = label
		}
	}
	return in, nil
}

func (v *View) loadImportances() tea.Cmd {
	return func() tea.Msg {
		if v.prediction == nil {
			return messages.ImportancesLoaded{Err: ErrNoPredictionService}
		}
		imps, err := v.prediction.Importances()
		return messages.ImportancesLoaded{Importances: imps, Err: err}
	}
}

func (v *View) handlePredictionCompleted(msg messages.PredictionCompleted) {
	v.predicting = false
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.result = msg.Prediction
	v.statusbar.SetState(status.StateResult)
	v.statusbar.SetMessage(services.FormatYield(msg.Prediction.Yield) + " · request " + shortID(msg.Prediction.RequestID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (v *View) fieldCount() int {
	return max(1, len(v.numbers)+len(v.pickers))
}

func (v *View) focusedNumber() *input.NumberInput {
	if v.focus < len(v.numbers) {
		return v.numbers[v.focus]
	}
	return nil
}

func (v *View) focusedPicker() *input.Picker {
	i := v.focus - len(v.numbers)
	if i >= 0 && i < len(v.pickers) {
		return v.pickers[i]
	}
	return nil
}

// applyFocus moves focus to the field at v.focus.
func (v *View) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for i, n := range v.numbers {
		if i == v.focus {
			cmd = n.Focus()
		} else {
			n.Blur()
		}
	}
	for i, p := range v.pickers {
		if len(v.numbers)+i == v.focus {
			p.Focus()
		} else {
			p.Blur()
		}
	}
	return cmd
}

// View renders the form view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	header := v.styles.Title.Render("Predict Yield")
	fields := v.renderFields()
	result := v.renderResult()

	var body string
	if v.width >= sideBySideWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, fields, "    ", result)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, fields, "", result)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", v.statusbar.View())
}

// renderFields renders the window of fields around the focus that fits
// the terminal height.
func (v *View) renderFields() string {
	lines := make([]string, 0, len(v.numbers)+len(v.pickers)+2)
	for _, n := range v.numbers {
		lines = append(lines, n.View())
	}
	if len(v.pickers) > 0 {
		lines = append(lines, "")
		for _, p := range v.pickers {
			lines = append(lines, p.View())
		}
	}

	visible := v.visibleFieldRows()
	if len(lines) <= visible {
		return strings.Join(lines, "\n")
	}

	focusLine := v.focus
	if v.focus >= len(v.numbers) {
		focusLine++ // blank separator line
	}
	start := min(max(0, focusLine-visible/2), len(lines)-visible)
	window := lines[start : start+visible]

	more := v.styles.Muted.Render("  ⋮")
	if start > 0 {
		window = append([]string{more}, window[1:]...)
	}
	if start+visible < len(lines) {
		window = append(window[:len(window)-1], more)
	}
	return strings.Join(window, "\n")
}

func (v *View) visibleFieldRows() int {
	reserved := 6 // header, spacing, status bar
	if v.width < sideBySideWidth {
		reserved += 8 // bordered result below the fields
	}
	return max(5, v.height-reserved)
}

// renderResult renders the last prediction, or the last error.
func (v *View) renderResult() string {
	sections := make([]string, 0, 8)

	switch {
	case v.predicting:
		sections = append(sections, v.styles.Muted.Render("Predicting..."))
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case v.result != nil:
		sections = append(sections,
			v.styles.Subtitle.Render("Predicted yield"),
			v.styles.Yield.Render(services.FormatYield(v.result.Yield)))
		if msg := v.result.Advisory.Message(); msg != "" {
			sections = append(sections, v.styles.Warning.Width(50).Render(msg))
		}
		if len(v.result.UnseenColumns) > 0 {
			sections = append(sections, v.styles.Muted.Render(
				"Unseen labels: "+strings.Join(v.result.UnseenColumns, ", ")))
		}
		if v.result.Row.Len() > 0 {
			sections = append(sections, "", v.styles.Subtitle.Render("Input summary"), v.renderRow(v.result))
		}
	default:
		sections = append(sections, v.styles.Muted.Render("Fill in the form and press enter."))
	}

	if v.showImportances {
		sections = append(sections, "", v.styles.Subtitle.Render("Feature importances"))
		switch {
		case !v.importancesDone:
			sections = append(sections, v.styles.Muted.Render("Loading..."))
		case v.importancesErr != nil:
			sections = append(sections, v.styles.Warning.Render("Warning: "+v.importancesErr.Error()))
		default:
			sections = append(sections, v.chart.View())
		}
	}

	return v.styles.Border.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderRow lists the features the model received, in schema order.
// Substituted values are highlighted with their reason.
func (v *View) renderRow(p *domain.Prediction) string {
	reasons := make(map[string]domain.SubstitutionReason, len(p.Substitutions))
	for _, sub := range p.Substitutions {
		reasons[sub.Feature] = sub.Reason
	}

	entries := p.Row.Entries()
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		line := fmt.Sprintf("%-*s  %s", width, e.Name, strconv.FormatFloat(e.Value, 'f', -1, 64))
		if reason, ok := reasons[e.Name]; ok {
			lines[i] = v.styles.Warning.Render(fmt.Sprintf("%s  (%s)", line, reason))
			continue
		}
		lines[i] = v.styles.Muted.Render(line)
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.statusbar.SetWidth(width)
	chartWidth := width
	if width >= sideBySideWidth {
		chartWidth = width / 2
	}
	v.chart.SetWidth(chartWidth)
}

// Reset restores every field default and clears the result.
func (v *View) Reset() {
	for _, n := range v.numbers {
		n.Reset()
	}
	for _, p := range v.pickers {
		p.Reset()
	}
	v.focus = 0
	v.result = nil
	v.err = nil
	v.predicting = false
	v.statusbar.Clear()
}

// SetSource shows the artifact source in the status bar.
func (v *View) SetSource(source string) {
	v.statusbar.SetSource(source)
}

// Warn shows a warning in the status bar without clearing the result.
func (v *View) Warn(message string) {
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(message)
}

// Result returns the last successful prediction.
func (v *View) Result() *domain.Prediction {
	return v.result
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Focus returns the index of the focused field.
func (v *View) Focus() int {
	return v.focus
}

// Predicting returns true while a prediction is in flight.
func (v *View) Predicting() bool {
	return v.predicting
}

// ShowingImportances returns true if the chart is toggled on.
func (v *View) ShowingImportances() bool {
	return v.showImportances
}

// Pickers returns the category pickers.
func (v *View) Pickers() []*input.Picker {
	return v.pickers
}

// Numbers returns the numeric inputs.
func (v *View) Numbers() []*input.NumberInput {
	return v.numbers
}
