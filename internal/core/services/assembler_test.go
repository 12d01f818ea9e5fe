package services

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

func mustSchema(t *testing.T, names ...string) domain.FeatureSchema {
	t.Helper()
	schema, err := domain.NewFeatureSchema(names)
	require.NoError(t, err)
	return schema
}

func TestAssemble_SchemaOrder(t *testing.T) {
	schema := mustSchema(t, "Rainfall_mm", "Year", "Crop_Encoded", "Area_ha")

	row, subs := Assemble(map[string]any{
		"Area_ha":      12.5,
		"Crop_Encoded": 3,
		"Year":         2021,
		"Rainfall_mm":  1100.0,
		"Unused":       "ignored",
	}, schema)

	assert.Empty(t, subs)
	if diff := cmp.Diff([]string{"Rainfall_mm", "Year", "Crop_Encoded", "Area_ha"}, row.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1100, 2021, 3, 12.5}, row.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_OrderIndependent(t *testing.T) {
	schema := mustSchema(t, "A", "B", "C")

	first, _ := Assemble(map[string]any{"A": 1, "B": 2, "C": 3}, schema)
	second, _ := Assemble(map[string]any{"C": 3, "A": 1, "B": 2}, schema)

	if diff := cmp.Diff(first.Values(), second.Values()); diff != "" {
		t.Errorf("rows differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Names(), second.Names())
}

func TestAssemble_Idempotent(t *testing.T) {
	schema := mustSchema(t, "A", "B")
	raw := map[string]any{"A": "4.5", "B": "oops"}

	row1, subs1 := Assemble(raw, schema)
	row2, subs2 := Assemble(raw, schema)

	assert.Equal(t, row1.Values(), row2.Values())
	assert.Equal(t, subs1, subs2)
	assert.Equal(t, map[string]any{"A": "4.5", "B": "oops"}, raw)
}

func TestAssemble_MissingKeySubstituted(t *testing.T) {
	schema := mustSchema(t, "A", "B")

	row, subs := Assemble(map[string]any{"A": 5}, schema)

	b, ok := row.Get("B")
	require.True(t, ok)
	assert.Equal(t, domain.SubstituteValue, b)
	assert.Equal(t, []domain.Substitution{{Feature: "B", Reason: domain.ReasonMissing}}, subs)
}

func TestAssemble_NilInput(t *testing.T) {
	schema := mustSchema(t, "A", "B")

	row, subs := Assemble(nil, schema)

	assert.Equal(t, []float64{0, 0}, row.Values())
	assert.Len(t, subs, 2)
}

func TestAssemble_Coercion(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   float64
		reason domain.SubstitutionReason
	}{
		{"float64", 842.17, 842.17, ""},
		{"float32", float32(0.5), 0.5, ""},
		{"int", 7, 7, ""},
		{"int64", int64(-3), -3, ""},
		{"uint8", uint8(200), 200, ""},
		{"bool true", true, 1, ""},
		{"bool false", false, 0, ""},
		{"numeric string", " 12.25 ", 12.25, ""},
		{"json number", json.Number("1500"), 1500, ""},
		{"infinity kept", math.Inf(1), math.Inf(1), ""},
		{"nil", nil, 0, domain.ReasonMissing},
		{"blank string", "   ", 0, domain.ReasonMissing},
		{"word", "loamy", 0, domain.ReasonNonNumeric},
		{"bad json number", json.Number("x1"), 0, domain.ReasonNonNumeric},
		{"slice", []int{1}, 0, domain.ReasonNonNumeric},
		{"nan", math.NaN(), 0, domain.ReasonNotANumber},
		{"nan string", "NaN", 0, domain.ReasonNotANumber},
	}

	schema := mustSchema(t, "X")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, subs := Assemble(map[string]any{"X": tt.raw}, schema)

			got, ok := row.Get("X")
			require.True(t, ok)
			assert.Equal(t, tt.want, got)

			if tt.reason == "" {
				assert.Empty(t, subs)
				return
			}
			require.Len(t, subs, 1)
			assert.Equal(t, "X", subs[0].Feature)
			assert.Equal(t, tt.reason, subs[0].Reason)
		})
	}
}
