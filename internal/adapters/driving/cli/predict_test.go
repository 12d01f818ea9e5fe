package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

func TestPredictCmd_Use(t *testing.T) {
	assert.Equal(t, "predict", predictCmd.Use)
	assert.NotNil(t, predictCmd.Flags().Lookup("set"))
	assert.NotNil(t, predictCmd.Flags().Lookup("category"))
	assert.NotNil(t, predictCmd.Flags().Lookup("encoded"))
}

func TestPredictCmd_Defaults(t *testing.T) {
	model := &testModel{output: 842.1749}
	setupTestServices(t, &testSource{model: model})

	out, err := runCLI(t, "predict")

	require.NoError(t, err)
	assert.Contains(t, out, "Predicted yield: 842.17 kg/ha")
	assert.NotContains(t, out, "Note:")
	assert.Contains(t, out, "Unseen labels encoded as -1: Crop")
	assert.Equal(t, []float64{200, 7, -1}, model.last)
}

func TestPredictCmd_WithInputs(t *testing.T) {
	model := &testModel{output: 2500}
	setupTestServices(t, &testSource{model: model})

	out, err := runCLI(t, "predict", "--category", "Crop=Rice", "--set", "Rainfall_mm=850", "--set", "Soil_pH=6.5")

	require.NoError(t, err)
	assert.Contains(t, out, "Predicted yield: 2,500.00 kg/ha")
	assert.NotContains(t, out, "Unseen")
	assert.Equal(t, []float64{850, 6.5, 1}, model.last)
}

func TestPredictCmd_UnseenLabel(t *testing.T) {
	model := &testModel{output: 500}
	setupTestServices(t, &testSource{model: model})

	out, err := runCLI(t, "predict", "--category", "Crop=Quinoa")

	require.NoError(t, err)
	assert.Contains(t, out, "Unseen labels encoded as -1: Crop")
	assert.Equal(t, -1.0, model.last[2])
}

func TestPredictCmd_Advisories(t *testing.T) {
	tests := []struct {
		name    string
		output  float64
		display string
		note    string
	}{
		{"negative output is clamped", -12.5, "0.00 kg/ha", domain.AdvisoryZero.Message()},
		{"zero output", 0, "0.00 kg/ha", domain.AdvisoryZero.Message()},
		{"low output", 42, "42.00 kg/ha", domain.AdvisoryLow.Message()},
		{"threshold is not low", 100, "100.00 kg/ha", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t, &testSource{model: &testModel{output: tt.output}})

			out, err := runCLI(t, "predict")

			require.NoError(t, err)
			assert.Contains(t, out, "Predicted yield: "+tt.display)
			if tt.note == "" {
				assert.NotContains(t, out, "Note:")
			} else {
				assert.Contains(t, out, "Note: "+tt.note)
			}
		})
	}
}

func TestPredictCmd_InvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"not a number", []string{"--set", "Rainfall_mm=lots"}, "is not a number"},
		{"out of range", []string{"--set", "Soil_pH=12"}, "Soil pH must be between 4 and 9"},
		{"not whole", []string{"--set", "Year=2023.5"}, "must be a whole number"},
		{"missing equals", []string{"--set", "Rainfall_mm"}, "expected Name=value"},
		{"encoded with category", []string{"--encoded", "--category", "Crop=Rice"}, "cannot be combined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &testModel{output: 1}
			setupTestServices(t, &testSource{model: model})

			_, err := runCLI(t, append([]string{"predict"}, tt.args...)...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Nil(t, model.last)
		})
	}
}

func TestPredictCmd_Encoded(t *testing.T) {
	model := &testModel{output: 300}
	setupTestServices(t, &testSource{model: model})

	out, err := runCLI(t, "predict", "--encoded", "--set", "Crop_Encoded=2", "--set", "Rainfall_mm=10")

	require.NoError(t, err)
	assert.Contains(t, out, "300.00 kg/ha")
	assert.Equal(t, []float64{10, 0, 2}, model.last)
}

func TestPredictCmd_EncodedNonNumericBecomesZero(t *testing.T) {
	model := &testModel{output: 300}
	setupTestServices(t, &testSource{model: model})

	_, err := runCLI(t, "predict", "--encoded", "--set", "Rainfall_mm=abc", "--set", "Soil_pH=6")

	require.NoError(t, err)
	assert.Equal(t, []float64{0, 6, 0}, model.last)
}

func TestPredictCmd_InputSummary(t *testing.T) {
	setupTestServices(t, &testSource{model: &testModel{output: 842.17}})

	out, err := runCLI(t, "predict")

	require.NoError(t, err)
	summary, result, found := strings.Cut(out, "Predicted yield:")
	require.True(t, found)
	assert.Contains(t, result, "842.17 kg/ha")
	assert.Contains(t, summary, "Input summary:")
	assert.Contains(t, summary, "Rainfall_mm   200")
	assert.Contains(t, summary, "Soil_pH       7")
	assert.Contains(t, summary, "Crop_Encoded  -1")
	assert.Less(t, strings.Index(summary, "Rainfall_mm"), strings.Index(summary, "Soil_pH"))
	assert.Less(t, strings.Index(summary, "Soil_pH"), strings.Index(summary, "Crop_Encoded"))
}

func TestPredictCmd_InputSummarySubstitutions(t *testing.T) {
	setupTestServices(t, &testSource{model: &testModel{output: 300}})

	out, err := runCLI(t, "predict", "--encoded", "--set", "Rainfall_mm=abc", "--set", "Soil_pH=6")

	require.NoError(t, err)
	assert.Contains(t, out, "Rainfall_mm   0  (non_numeric)")
	assert.Contains(t, out, "Soil_pH       6\n")
	assert.Contains(t, out, "Crop_Encoded  0  (missing)")
}

func TestPredictCmd_JSON(t *testing.T) {
	setupTestServices(t, &testSource{model: &testModel{output: 1234.5}})

	out, err := runCLI(t, "predict", "--json", "--category", "Crop=Maize")
	require.NoError(t, err)

	var got struct {
		RequestID string            `json:"request_id"`
		Yield     float64           `json:"yield"`
		Advisory  string            `json:"advisory"`
		Display   string            `json:"display"`
		Row       []domain.RowEntry `json:"row"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.RequestID)
	assert.Equal(t, 1234.5, got.Yield)
	assert.Equal(t, "none", got.Advisory)
	assert.Equal(t, "1,234.50 kg/ha", got.Display)
	assert.Equal(t, []domain.RowEntry{
		{Name: "Rainfall_mm", Value: 200},
		{Name: "Soil_pH", Value: 7},
		{Name: "Crop_Encoded", Value: 0},
	}, got.Row)
}

func TestPredictCmd_WithImportances(t *testing.T) {
	model := rankedModel{testModel: &testModel{output: 900}, scores: []float64{30, 5, 12}}
	setupTestServices(t, &testSource{model: model})

	out, err := runCLI(t, "predict", "--importances")

	require.NoError(t, err)
	assert.Contains(t, out, "Predicted yield: 900.00 kg/ha")
	_, chart, found := strings.Cut(out, "Feature importances:")
	require.True(t, found)
	assert.Less(t, strings.Index(chart, "Soil_pH"), strings.Index(chart, "Rainfall_mm"))
}

func TestPredictCmd_ImportancesUnavailable(t *testing.T) {
	setupTestServices(t, &testSource{model: &testModel{output: 900}})

	out, err := runCLI(t, "predict", "--importances")

	require.NoError(t, err)
	assert.Contains(t, out, "Predicted yield: 900.00 kg/ha")
	assert.Contains(t, out, "Warning: feature importances unavailable")
}

func TestPredictCmd_ArtifactFailure(t *testing.T) {
	setupTestServices(t, &testSource{modelErr: errDisk})

	_, err := runCLI(t, "predict")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactUnavailable)
	assert.Contains(t, err.Error(), "cannot start")
	assert.Contains(t, err.Error(), "model artifact unavailable")
}

func TestPredictCmd_NotConfigured(t *testing.T) {
	setupTestServices(t, nil)

	_, err := runCLI(t, "predict")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "prediction service not configured")
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"A=1", " B =x=y", "A=2"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "2", "B": "x=y"}, got)

	_, err = parseAssignments([]string{"=1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
