package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

func TestImportance_Empty(t *testing.T) {
	c := NewImportance(nil)

	assert.Contains(t, c.View(), "No importances")
}

func TestImportance_View(t *testing.T) {
	c := NewImportance(nil)
	c.SetWidth(60)
	c.SetImportances([]domain.FeatureImportance{
		{Name: "Soil_pH", Score: 0},
		{Name: "Humidity", Score: 12},
		{Name: "Rainfall", Score: 48},
	})

	lines := strings.Split(c.View(), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "Soil_pH")
	assert.NotContains(t, lines[0], "█", "zero score draws no bar")
	assert.Contains(t, lines[1], "Humidity")
	assert.Contains(t, lines[2], "Rainfall")
	assert.Contains(t, lines[2], "48")

	assert.Less(t, strings.Count(lines[1], "█"), strings.Count(lines[2], "█"))
}

func TestImportance_BarWidthBounds(t *testing.T) {
	c := NewImportance(nil)
	c.SetImportances([]domain.FeatureImportance{{Name: "Rainfall", Score: 1}})

	c.SetWidth(5)
	assert.Equal(t, minBarWidth, strings.Count(c.View(), "█"))

	c.SetWidth(500)
	assert.Equal(t, maxBarWidth, strings.Count(c.View(), "█"))
}

func TestImportance_Importances(t *testing.T) {
	c := NewImportance(nil)
	imps := []domain.FeatureImportance{{Name: "A", Score: 1}}

	c.SetImportances(imps)

	assert.Equal(t, imps, c.Importances())
}
