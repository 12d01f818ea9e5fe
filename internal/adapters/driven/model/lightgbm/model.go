package lightgbm

import (
	"fmt"
	"math"
	"strconv"

	"github.com/custodia-labs/yieldcast/internal/core/ports/driven"
)

// Ensure Model implements the driven interfaces.
var (
	_ driven.Model              = (*Model)(nil)
	_ driven.ImportanceReporter = (*Model)(nil)
	_ driven.NamedFeatures      = (*Model)(nil)
)

// outputTransform maps the raw ensemble score to the model output.
type outputTransform func(float64) float64

func identity(v float64) float64 { return v }

// Model is a parsed LightGBM booster. It is immutable and safe for
// concurrent use.
type Model struct {
	version       string
	objective     string
	featureNames  []string
	numFeatures   int
	averageOutput bool
	trees         []tree
	transform     outputTransform
	splitCounts   []float64
}

// Version returns the model format version, e.g. "v3".
func (m *Model) Version() string {
	return m.version
}

// Objective returns the training objective name.
func (m *Model) Objective() string {
	return m.objective
}

// NumTrees returns the number of trees in the ensemble.
func (m *Model) NumTrees() int {
	return len(m.trees)
}

// NumFeatures returns the number of features the model was trained on.
func (m *Model) NumFeatures() int {
	return m.numFeatures
}

// FeatureNames returns the feature names recorded in the model file.
func (m *Model) FeatureNames() []string {
	out := make([]string, len(m.featureNames))
	copy(out, m.featureNames)
	return out
}

// FeatureImportances returns the number of splits that use each feature,
// the same measure LightGBM reports as importance_type="split".
func (m *Model) FeatureImportances() []float64 {
	out := make([]float64, len(m.splitCounts))
	copy(out, m.splitCounts)
	return out
}

// Predict evaluates the ensemble on one row.
func (m *Model) Predict(values []float64) (float64, error) {
	if len(values) != m.numFeatures {
		return 0, fmt.Errorf("lightgbm: got %d values, model has %d features", len(values), m.numFeatures)
	}

	var sum float64
	for i := range m.trees {
		sum += m.trees[i].predict(values)
	}
	if m.averageOutput && len(m.trees) > 0 {
		sum /= float64(len(m.trees))
	}
	return m.transform(sum), nil
}

func (m *Model) countSplits() {
	m.splitCounts = make([]float64, m.numFeatures)
	for i := range m.trees {
		for _, f := range m.trees[i].splitFeature {
			m.splitCounts[f]++
		}
	}
}

// transformFor returns the output transform of an objective line such
// as "poisson", "binary sigmoid:1" or "regression sqrt". Models trained
// on sqrt-transformed labels are mapped back with sign(x)*x*x.
func transformFor(name string, params map[string]string) (outputTransform, error) {
	base, err := objectiveTransform(name, params)
	if err != nil {
		return nil, err
	}
	if _, ok := params["sqrt"]; !ok {
		return base, nil
	}
	return func(v float64) float64 {
		out := base(v)
		return math.Copysign(out*out, out)
	}, nil
}

func objectiveTransform(name string, params map[string]string) (outputTransform, error) {
	switch name {
	case "poisson", "gamma", "tweedie":
		return math.Exp, nil
	case "binary", "cross_entropy", "xentropy":
		sigmoid := 1.0
		if s, ok := params["sigmoid"]; ok {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("bad sigmoid %q", s)
			}
			sigmoid = v
		}
		return func(v float64) float64 { return 1 / (1 + math.Exp(-sigmoid*v)) }, nil
	case "multiclass", "multiclassova", "softmax", "multiclass_ova", "ova", "ovr":
		return nil, fmt.Errorf("objective %s has more than one output", name)
	default:
		return identity, nil
	}
}
