package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampYield(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"negative is clamped", -37.5, 0},
		{"positive passes through", 842.17, 842.17},
		{"zero stays zero", 0, 0},
		{"NaN is clamped", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampYield(tt.raw))
		})
	}
}

func TestAdviseFor(t *testing.T) {
	assert.Equal(t, AdvisoryZero, AdviseFor(0, 100))
	assert.Equal(t, AdvisoryLow, AdviseFor(99.99, 100))
	assert.Equal(t, AdvisoryNone, AdviseFor(100, 100))
	assert.Equal(t, AdvisoryNone, AdviseFor(842.17, 100))
}

func TestAdvisory_Message(t *testing.T) {
	assert.Contains(t, AdvisoryZero.Message(), "yield of 0")
	assert.Contains(t, AdvisoryLow.Message(), "very low")
	assert.Empty(t, AdvisoryNone.Message())
}

func TestNewPrediction(t *testing.T) {
	row := NewRow([]string{"A"}, []float64{5})

	clamped := NewPrediction("req-1", -37.5, 100, row)
	assert.Equal(t, 0.0, clamped.Yield)
	assert.Equal(t, -37.5, clamped.Raw)
	assert.True(t, clamped.Clamped)
	assert.Equal(t, AdvisoryZero, clamped.Advisory)
	assert.Equal(t, "req-1", clamped.RequestID)

	normal := NewPrediction("req-2", 842.17, 100, row)
	assert.Equal(t, 842.17, normal.Yield)
	assert.False(t, normal.Clamped)
	assert.Equal(t, AdvisoryNone, normal.Advisory)
}

func TestRow(t *testing.T) {
	row := NewRow([]string{"A", "B"}, []float64{5, 2})

	assert.Equal(t, 2, row.Len())
	assert.Equal(t, []string{"A", "B"}, row.Names())
	assert.Equal(t, []float64{5, 2}, row.Values())
	assert.Equal(t, []RowEntry{{Name: "A", Value: 5}, {Name: "B", Value: 2}}, row.Entries())

	v, ok := row.Get("B")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = row.Get("C")
	assert.False(t, ok)

	values := row.Values()
	values[0] = 99
	got, _ := row.Get("A")
	assert.Equal(t, 5.0, got)
}

func TestRow_JSONKeepsOrder(t *testing.T) {
	row := NewRow([]string{"Rainfall_mm", "Crop_Encoded", "Area_ha"}, []float64{1200, -1, 2.5})

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"name":"Rainfall_mm","value":1200},{"name":"Crop_Encoded","value":-1},{"name":"Area_ha","value":2.5}]`,
		string(data))

	var back Row
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, row.Names(), back.Names())
	assert.Equal(t, row.Values(), back.Values())

	data, err = json.Marshal(Row{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestPrediction_JSONIncludesRow(t *testing.T) {
	p := NewPrediction("req-1", 842.17, 100, NewRow([]string{"B", "A"}, []float64{2, 5}))

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got struct {
		Row []RowEntry `json:"row"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []RowEntry{{Name: "B", Value: 2}, {Name: "A", Value: 5}}, got.Row)
}
