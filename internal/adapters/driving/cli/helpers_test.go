package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/yieldcast/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driven"
	"github.com/custodia-labs/yieldcast/internal/core/services"
)

var testFeatures = []string{"Rainfall_mm", "Soil_pH", "Crop_Encoded"}

var errDisk = errors.New("no such file or directory")

// testSource serves a three-feature model from memory.
type testSource struct {
	model    driven.Model
	modelErr error
}

func (s *testSource) LoadSchema(_ context.Context) (domain.FeatureSchema, error) {
	return domain.NewFeatureSchema(testFeatures)
}

func (s *testSource) LoadEncoders(_ context.Context) (domain.EncoderTable, error) {
	crop, err := domain.NewLabelEncoder("Crop", []string{"Maize", "Rice", "Wheat"})
	if err != nil {
		return nil, err
	}
	return domain.EncoderTable{"Crop": crop}, nil
}

func (s *testSource) LoadModel(_ context.Context) (driven.Model, error) {
	return s.model, s.modelErr
}

func (s *testSource) Describe() string {
	return "memory"
}

// testModel returns a fixed output and records the row.
type testModel struct {
	output float64
	last   []float64
}

func (m *testModel) Predict(values []float64) (float64, error) {
	m.last = append([]float64(nil), values...)
	return m.output, nil
}

func (m *testModel) NumFeatures() int {
	return len(testFeatures)
}

// rankedModel adds importances to testModel.
type rankedModel struct {
	*testModel
	scores []float64
}

func (m rankedModel) FeatureImportances() []float64 {
	return m.scores
}

// setupTestServices installs services over source and resets command state.
func setupTestServices(t *testing.T, source driven.ArtifactSource) {
	t.Helper()

	prevArtifacts, prevPrediction, prevSettings, prevExport := artifactService, predictionService, settingsService, exportBundle
	prevBootstrap := bootstrap
	t.Cleanup(func() {
		artifactService, predictionService, settingsService, exportBundle = prevArtifacts, prevPrediction, prevSettings, prevExport
		bootstrap = prevBootstrap
	})

	bootstrap = nil
	if source != nil {
		store := services.NewArtifactStore(source)
		artifactService = store
		predictionService = services.NewPredictionService(store, domain.DefaultLowYieldThreshold)
	} else {
		artifactService = nil
		predictionService = nil
	}
	settingsService = services.NewSettingsService(memory.NewConfigStore())
	exportBundle = nil

	resetFlags()
}

func resetFlags() {
	predictCmd.ResetFlags()
	definePredictFlags()
	importancesJSON = false
	schemaJSON = false
	bundleClear = false
	bundleOut = "yieldcast.db"
	verbose = false
	artifactsDir = ""
	bundlePath = ""
	configPath = ""
}

// runCLI executes the root command with args and returns its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
