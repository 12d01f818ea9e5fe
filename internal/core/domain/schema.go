package domain

import "fmt"

// FeatureSchema is the ordered list of feature names a model was trained on.
// Inference rows must present values in exactly this order.
type FeatureSchema struct {
	names []string
	index map[string]int
}

// NewFeatureSchema builds a schema from names in training order.
// Returns ErrInvalidInput for an empty list, blank names or duplicates.
func NewFeatureSchema(names []string) (FeatureSchema, error) {
	if len(names) == 0 {
		return FeatureSchema{}, fmt.Errorf("%w: feature schema is empty", ErrInvalidInput)
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return FeatureSchema{}, fmt.Errorf("%w: feature %d has no name", ErrInvalidInput, i)
		}
		if prev, dup := index[name]; dup {
			return FeatureSchema{}, fmt.Errorf("%w: feature %q repeated at positions %d and %d",
				ErrInvalidInput, name, prev, i)
		}
		index[name] = i
	}

	owned := make([]string, len(names))
	copy(owned, names)
	return FeatureSchema{names: owned, index: index}, nil
}

// Names returns a copy of the feature names in order.
func (s FeatureSchema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of features.
func (s FeatureSchema) Len() int {
	return len(s.names)
}

// Index returns the position of name, or -1.
func (s FeatureSchema) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Contains returns true if name is a schema feature.
func (s FeatureSchema) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// IsZero returns true for an unloaded schema.
func (s FeatureSchema) IsZero() bool {
	return len(s.names) == 0
}

// FeatureForColumn returns the schema feature that carries the code of a
// categorical column: "<column>_Encoded" if listed, else the bare column
// name if listed. The second result is false if the schema has neither.
func (s FeatureSchema) FeatureForColumn(column string) (string, bool) {
	if encoded := EncodedFeatureName(column); s.Contains(encoded) {
		return encoded, true
	}
	if s.Contains(column) {
		return column, true
	}
	return "", false
}
