// Package domain defines the core business entities for yieldcast.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FeatureSchema: The ordered feature names the model was trained on
//   - LabelEncoder: Label to integer code mapping for one categorical column
//   - Row: One assembled feature row in schema order
//   - Prediction: The clamped result of one inference call
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
