package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

func TestImportancesCmd_Text(t *testing.T) {
	model := rankedModel{testModel: &testModel{}, scores: []float64{30, 5, 12}}
	setupTestServices(t, &testSource{model: model})

	out, err := runCLI(t, "importances")

	require.NoError(t, err)
	assert.Contains(t, out, "Feature importances:")
	soil := strings.Index(out, "Soil_pH")
	crop := strings.Index(out, "Crop_Encoded")
	rain := strings.Index(out, "Rainfall_mm")
	assert.Less(t, soil, crop)
	assert.Less(t, crop, rain)
}

func TestImportancesCmd_JSON(t *testing.T) {
	model := rankedModel{testModel: &testModel{}, scores: []float64{30, 5, 12}}
	setupTestServices(t, &testSource{model: model})

	out, err := runCLI(t, "importances", "--json")
	require.NoError(t, err)

	var got []domain.FeatureImportance
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []domain.FeatureImportance{
		{Name: "Soil_pH", Score: 5},
		{Name: "Crop_Encoded", Score: 12},
		{Name: "Rainfall_mm", Score: 30},
	}, got)
}

func TestImportancesCmd_Unavailable(t *testing.T) {
	setupTestServices(t, &testSource{model: &testModel{}})

	out, err := runCLI(t, "importances")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: feature importances unavailable")
	assert.NotContains(t, out, "#")
}

func TestImportancesCmd_LengthMismatch(t *testing.T) {
	model := rankedModel{testModel: &testModel{}, scores: []float64{1, 2}}
	setupTestServices(t, &testSource{model: model})

	out, err := runCLI(t, "importances")

	require.NoError(t, err)
	assert.Contains(t, out, "2 scores for 3 features")
}

func TestImportanceBars(t *testing.T) {
	lines := importanceBars([]domain.FeatureImportance{
		{Name: "Zero", Score: 0},
		{Name: "Half", Score: 5},
		{Name: "Full", Score: 10},
	}, 10)

	require.Len(t, lines, 3)
	assert.Equal(t, "Zero            0", lines[0])
	assert.Equal(t, "Half #####      5", lines[1])
	assert.Equal(t, "Full ########## 10", lines[2])
}

func TestImportanceBars_TinyScoreStillDrawn(t *testing.T) {
	lines := importanceBars([]domain.FeatureImportance{
		{Name: "a", Score: 1},
		{Name: "b", Score: 1000},
	}, 40)

	assert.Contains(t, lines[0], "a #")
}
