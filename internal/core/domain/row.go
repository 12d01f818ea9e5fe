package domain

import "encoding/json"

// SubstitutionReason explains why a raw value was replaced.
type SubstitutionReason string

// Substitution reasons.
const (
	// ReasonMissing means the raw input had no value for the feature.
	ReasonMissing SubstitutionReason = "missing"

	// ReasonNonNumeric means the raw value could not be read as a number.
	ReasonNonNumeric SubstitutionReason = "non_numeric"

	// ReasonNotANumber means the raw value was NaN.
	ReasonNotANumber SubstitutionReason = "not_a_number"
)

// SubstituteValue is the value used in place of a missing or bad field.
const SubstituteValue = 0.0

// Substitution records one field that was defaulted during assembly.
type Substitution struct {
	Feature string             `json:"feature"`
	Raw     any                `json:"raw,omitempty"`
	Reason  SubstitutionReason `json:"reason"`
}

// Row is one assembled feature row. Its names are exactly the schema
// names in schema order and every value is numeric.
type Row struct {
	names  []string
	values []float64
}

// NewRow pairs names and values. Both slices are copied.
func NewRow(names []string, values []float64) Row {
	n := make([]string, len(names))
	copy(n, names)
	v := make([]float64, len(values))
	copy(v, values)
	return Row{names: n, values: v}
}

// Names returns the feature names in order.
func (r Row) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Values returns the feature values in order.
func (r Row) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of features in the row.
func (r Row) Len() int {
	return len(r.names)
}

// Get returns the value for name.
func (r Row) Get(name string) (float64, bool) {
	for i, n := range r.names {
		if n == name {
			return r.values[i], true
		}
	}
	return 0, false
}

// RowEntry is one feature of a Row.
type RowEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Entries returns the features in schema order.
func (r Row) Entries() []RowEntry {
	out := make([]RowEntry, len(r.names))
	for i, n := range r.names {
		out[i] = RowEntry{Name: n, Value: r.values[i]}
	}
	return out
}

// MarshalJSON encodes the row as an ordered array of {name, value}.
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Entries())
}

// UnmarshalJSON decodes the array written by MarshalJSON.
func (r *Row) UnmarshalJSON(data []byte) error {
	var entries []RowEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	r.names = make([]string, len(entries))
	r.values = make([]float64, len(entries))
	for i, e := range entries {
		r.names[i] = e.Name
		r.values[i] = e.Value
	}
	return nil
}

// Map returns the row as a name to value map.
func (r Row) Map() map[string]float64 {
	out := make(map[string]float64, len(r.names))
	for i, n := range r.names {
		out[n] = r.values[i]
	}
	return out
}
