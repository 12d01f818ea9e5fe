package driven

// Model is a trained regression model.
type Model interface {
	// Predict evaluates one row of feature values in schema order.
	Predict(values []float64) (float64, error)

	// NumFeatures returns the number of features the model was trained on.
	NumFeatures() int
}

// ImportanceReporter is implemented by models that expose per-feature
// importance scores, indexed like the model's features.
type ImportanceReporter interface {
	// FeatureImportances returns one score per model feature.
	FeatureImportances() []float64
}

// NamedFeatures is implemented by models that carry their own feature names.
type NamedFeatures interface {
	// FeatureNames returns the feature names recorded at training time.
	FeatureNames() []string
}
