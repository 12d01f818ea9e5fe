package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

func cropPicker() *Picker {
	p := NewPicker(nil, domain.CategoricalField{Column: "Crop", Label: "Crop"})
	p.SetOptions([]string{"Maize", "Rice", "Wheat"})
	return p
}

func TestNewPicker_NoOptions(t *testing.T) {
	p := NewPicker(nil, domain.CategoricalField{Column: "Crop", Label: "Crop"})

	require.NotNil(t, p)
	assert.Equal(t, "", p.Value())
	assert.Contains(t, p.View(), "(no labels)")

	// Cycling an empty picker is a no-op.
	p.Next()
	p.Prev()
	assert.Equal(t, "", p.Value())
}

func TestPicker_Cycle(t *testing.T) {
	p := cropPicker()

	assert.Equal(t, "Maize", p.Value())

	p.Next()
	assert.Equal(t, "Rice", p.Value())

	p.Next()
	p.Next()
	assert.Equal(t, "Maize", p.Value(), "next wraps to the first option")

	p.Prev()
	assert.Equal(t, "Wheat", p.Value(), "prev wraps to the last option")
}

func TestPicker_Select(t *testing.T) {
	p := cropPicker()

	assert.True(t, p.Select("Wheat"))
	assert.Equal(t, "Wheat", p.Value())

	assert.False(t, p.Select("Quinoa"))
	assert.Equal(t, "Wheat", p.Value())
}

func TestPicker_SetOptions_KeepsSelection(t *testing.T) {
	p := cropPicker()
	p.Select("Rice")

	p.SetOptions([]string{"Barley", "Rice"})
	assert.Equal(t, "Rice", p.Value())

	p.SetOptions([]string{"Barley", "Oats"})
	assert.Equal(t, "Barley", p.Value())
}

func TestPicker_Reset(t *testing.T) {
	p := cropPicker()
	p.Select("Wheat")

	p.Reset()

	assert.Equal(t, "Maize", p.Value())
}

func TestPicker_FocusAndView(t *testing.T) {
	p := cropPicker()

	assert.False(t, p.Focused())
	p.Focus()
	assert.True(t, p.Focused())

	view := p.View()
	assert.Contains(t, view, "Crop")
	assert.Contains(t, view, "Maize")
	assert.Contains(t, view, "1/3")

	p.Blur()
	assert.False(t, p.Focused())
}
