// Package chart renders the feature importance bar chart.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/yieldcast/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/services"
)

const (
	minBarWidth = 10
	maxBarWidth = 50
)

// Importance is a horizontal bar chart, one row per feature, in the
// order given. The longest bar belongs to the highest score.
type Importance struct {
	styles      *styles.Styles
	importances []domain.FeatureImportance
	width       int
}

// NewImportance creates an empty chart.
func NewImportance(s *styles.Styles) *Importance {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Importance{styles: s, width: 80}
}

// SetImportances replaces the charted scores.
func (c *Importance) SetImportances(importances []domain.FeatureImportance) {
	c.importances = importances
}

// Importances returns the charted scores.
func (c *Importance) Importances() []domain.FeatureImportance {
	return c.importances
}

// SetWidth sets the available width.
func (c *Importance) SetWidth(width int) {
	c.width = width
}

// View renders the chart.
func (c *Importance) View() string {
	if len(c.importances) == 0 {
		return c.styles.Muted.Render("No importances to show.")
	}

	nameWidth, scoreWidth := 0, 0
	maxScore := 0.0
	for _, imp := range c.importances {
		nameWidth = max(nameWidth, lipgloss.Width(imp.Name))
		scoreWidth = max(scoreWidth, len(services.FormatScore(imp.Score)))
		maxScore = max(maxScore, imp.Score)
	}
	barWidth := min(maxBarWidth, max(minBarWidth, c.width-nameWidth-scoreWidth-4))

	lines := make([]string, 0, len(c.importances))
	for _, imp := range c.importances {
		n := 0
		if maxScore > 0 && imp.Score > 0 {
			n = max(1, int(imp.Score/maxScore*float64(barWidth)+0.5))
		}
		name := c.styles.Normal.Render(fmt.Sprintf("%-*s", nameWidth, imp.Name))
		bar := c.styles.Bar.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barWidth-n)
		score := c.styles.Muted.Render(services.FormatScore(imp.Score))
		lines = append(lines, name+"  "+bar+" "+score)
	}
	return strings.Join(lines, "\n")
}
