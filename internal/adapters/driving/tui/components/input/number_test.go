package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

func rainfallField() domain.NumericField {
	return domain.NumericField{Name: "Rainfall", Label: "Rainfall (mm)", Min: 0, Max: 5000, Default: 1000}
}

func TestNewNumberInput(t *testing.T) {
	n := NewNumberInput(nil, rainfallField())

	require.NotNil(t, n)
	assert.NotNil(t, n.styles)
	assert.False(t, n.Focused())

	v, err := n.Value()
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, v, 1e-9)
}

func TestNumberInput_Init(t *testing.T) {
	n := NewNumberInput(nil, rainfallField())

	assert.NotNil(t, n.Init())
}

func TestNumberInput_Typing(t *testing.T) {
	n := NewNumberInput(nil, rainfallField())
	n.textinput.SetValue("")
	n.Focus()

	for _, r := range "72.5" {
		n, _ = n.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	v, err := n.Value()
	require.NoError(t, err)
	assert.InDelta(t, 72.5, v, 1e-9)
}

func TestNumberInput_Value_Errors(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field domain.NumericField
		want  string
	}{
		{"empty", "  ", rainfallField(), "is required"},
		{"not a number", "lots", rainfallField(), "must be a number"},
		{"out of range", "6000", rainfallField(), "must be between"},
		{
			"not whole",
			"2.5",
			domain.NumericField{Name: "N", Label: "Nitrogen", Min: 0, Max: 10, Integer: true},
			"whole number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNumberInput(nil, tt.field)
			n.textinput.SetValue(tt.text)

			_, err := n.Value()

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNumberInput_SetValueAndReset(t *testing.T) {
	n := NewNumberInput(nil, rainfallField())

	n.SetValue(1234.5)
	v, err := n.Value()
	require.NoError(t, err)
	assert.InDelta(t, 1234.5, v, 1e-9)

	n.Reset()
	v, err = n.Value()
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, v, 1e-9)
}

func TestNumberInput_FocusBlur(t *testing.T) {
	n := NewNumberInput(nil, rainfallField())

	n.Focus()
	assert.True(t, n.Focused())

	n.Blur()
	assert.False(t, n.Focused())
}

func TestNumberInput_View(t *testing.T) {
	n := NewNumberInput(nil, rainfallField())

	view := n.View()
	assert.Contains(t, view, "Rainfall (mm)")
	assert.Contains(t, view, "0 to 5000")

	n.SetValue(9999)
	assert.Contains(t, n.View(), "must be between")
}

func TestNumberInput_ViewUsesInputFieldStyle(t *testing.T) {
	n := NewNumberInput(nil, rainfallField())

	assert.Contains(t, n.View(), n.styles.InputField.Render(n.textinput.View()))
}

func TestNumberInput_Field(t *testing.T) {
	n := NewNumberInput(nil, rainfallField())

	assert.Equal(t, "Rainfall", n.Field().Name)
}
