// Package importances provides the feature importance view for the TUI.
package importances

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/components/chart"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driving"
)

// ErrNoPredictionService is returned when the view has no prediction service.
var ErrNoPredictionService = errors.New("prediction service not available")

// View shows how often the model splits on each feature.
type View struct {
	styles     *styles.Styles
	chart      *chart.Importance
	prediction driving.PredictionService

	loaded bool
	err    error

	width  int
	height int
	ready  bool
}

// NewView creates a new importance view.
func NewView(s *styles.Styles, prediction driving.PredictionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		chart:      chart.NewImportance(s),
		prediction: prediction,
		width:      80,
		height:     24,
	}
}

// Init loads the importances.
func (v *View) Init() tea.Cmd {
	return func() tea.Msg {
		if v.prediction == nil {
			return messages.ImportancesLoaded{Err: ErrNoPredictionService}
		}
		imps, err := v.prediction.Importances()
		return messages.ImportancesLoaded{Importances: imps, Err: err}
	}
}

// Update handles messages for the importance view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ImportancesLoaded:
		v.loaded = true
		v.err = msg.Err
		v.chart.SetImportances(msg.Importances)
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// View renders the chart.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Feature Importances"),
		v.styles.Muted.Render("Number of splits per feature, lowest first."),
		"",
	}
	switch {
	case !v.loaded:
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		sections = append(sections, v.styles.Warning.Render("Warning: "+v.err.Error()))
	default:
		sections = append(sections, v.chart.View())
	}
	sections = append(sections, "", v.styles.Help.Render("[esc] back to menu"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.chart.SetWidth(width)
}

// Importances returns the loaded scores.
func (v *View) Importances() []domain.FeatureImportance {
	return v.chart.Importances()
}

// Err returns the load error, if any.
func (v *View) Err() error {
	return v.err
}
