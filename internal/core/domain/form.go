package domain

import (
	"fmt"
	"strings"
)

// NumericField describes one numeric input of the prediction form.
type NumericField struct {
	// Name is the schema feature name.
	Name string

	// Label is the human-readable label.
	Label string

	// Min and Max bound the accepted value.
	Min float64
	Max float64

	// Default is the initial value.
	Default float64

	// Integer restricts the field to whole numbers.
	Integer bool
}

// Validate checks that v lies within the field's bounds.
func (f NumericField) Validate(v float64) error {
	if v < f.Min || v > f.Max {
		return fmt.Errorf("%w: %s must be between %g and %g", ErrInvalidInput, f.Label, f.Min, f.Max)
	}
	if f.Integer && v != float64(int64(v)) {
		return fmt.Errorf("%w: %s must be a whole number", ErrInvalidInput, f.Label)
	}
	return nil
}

// CategoricalField describes one categorical selection of the prediction form.
// The options are the encoder's known labels.
type CategoricalField struct {
	// Column is the encoder column name.
	Column string

	// Label is the human-readable label.
	Label string
}

// FeatureName returns the schema feature the encoded value is stored under.
func (f CategoricalField) FeatureName() string {
	return EncodedFeatureName(f.Column)
}

// DefaultNumericFields returns the environmental, soil and fertilizer inputs.
func DefaultNumericFields() []NumericField {
	return []NumericField{
		{Name: "Year", Label: "Year", Min: 2000, Max: 2030, Default: 2023, Integer: true},
		{Name: "Area_Hectares", Label: "Area (Hectares)", Min: 0, Max: 10000, Default: 100},
		{Name: "Rainfall_mm", Label: "Rainfall (mm)", Min: 0, Max: 1200, Default: 200},
		{Name: "Min_Temperature_C", Label: "Min Temperature (°C)", Min: -5, Max: 40, Default: 20},
		{Name: "Max_Temperature_C", Label: "Max Temperature (°C)", Min: -5, Max: 50, Default: 30},
		{Name: "Temp_Range", Label: "Temperature Range (°C)", Min: 0, Max: 40, Default: 10},
		{Name: "Humidity_Percent", Label: "Humidity (%)", Min: 0, Max: 100, Default: 60},
		{Name: "Soil_pH", Label: "Soil pH", Min: 4, Max: 9, Default: 7},
		{Name: "Organic_Carbon_Percent", Label: "Organic Carbon (%)", Min: 0, Max: 10, Default: 1},
		{Name: "NPK_Total", Label: "NPK Total (kg/ha)", Min: 0, Max: 5000, Default: 200},
		{Name: "Fertilizer_Total", Label: "Fertilizer Total (kg/ha)", Min: 0, Max: 1000, Default: 200},
		{Name: "Nitrogen_KgPerHa", Label: "Nitrogen (Kg/Ha)", Min: 0, Max: 500, Default: 100},
		{Name: "Phosphorus_KgPerHa", Label: "Phosphorus (Kg/Ha)", Min: 0, Max: 500, Default: 50},
		{Name: "Potassium_KgPerHa", Label: "Potassium (Kg/Ha)", Min: 0, Max: 500, Default: 50},
		{Name: "Pest_Incidence_Score", Label: "Pest Incidence Score (1-10)", Min: 1, Max: 10, Default: 5, Integer: true},
		{Name: "Urea_Applied_KgPerHa", Label: "Urea Applied (Kg/Ha)", Min: 0, Max: 1000, Default: 200},
		{Name: "DAP_Applied_KgPerHa", Label: "DAP Applied (Kg/Ha)", Min: 0, Max: 1000, Default: 100},
		{Name: "Potash_Applied_KgPerHa", Label: "Potash Applied (Kg/Ha)", Min: 0, Max: 1000, Default: 50},
	}
}

// DefaultCategoricalFields returns the categorical selections.
func DefaultCategoricalFields() []CategoricalField {
	return []CategoricalField{
		{Column: "Crop", Label: "Crop"},
		{Column: "Season", Label: "Season"},
		{Column: "District", Label: "District"},
		{Column: "Soil_Type", Label: "Soil Type"},
		{Column: "Irrigation_Type", Label: "Irrigation Type"},
	}
}

// DefaultFormInput returns a FormInput holding every numeric default.
// Categorical selections are left empty.
func DefaultFormInput() FormInput {
	in := FormInput{
		Numeric:     make(map[string]float64),
		Categorical: make(map[string]string),
	}
	for _, f := range DefaultNumericFields() {
		in.Numeric[f.Name] = f.Default
	}
	return in
}

// Bounds of a schema feature the form has no definition for.
const (
	openFieldMin = -1e9
	openFieldMax = 1e9
)

// FormFields lays out the form for a loaded schema. Every encoder column
// with a schema feature becomes a categorical field; every other schema
// feature becomes a numeric field, in schema order. Known features keep
// their default label, bounds and value.
func FormFields(schema FeatureSchema, encoderColumns []string) ([]NumericField, []CategoricalField) {
	knownCategorical := make(map[string]CategoricalField)
	for _, f := range DefaultCategoricalFields() {
		knownCategorical[f.Column] = f
	}
	knownNumeric := make(map[string]NumericField)
	for _, f := range DefaultNumericFields() {
		knownNumeric[f.Name] = f
	}

	claimed := make(map[string]bool)
	categorical := make([]CategoricalField, 0, len(encoderColumns))
	for _, column := range encoderColumns {
		feature, ok := schema.FeatureForColumn(column)
		if !ok {
			continue
		}
		claimed[feature] = true
		f, ok := knownCategorical[column]
		if !ok {
			f = CategoricalField{Column: column, Label: strings.ReplaceAll(column, "_", " ")}
		}
		categorical = append(categorical, f)
	}

	numeric := make([]NumericField, 0, schema.Len())
	for _, name := range schema.Names() {
		if claimed[name] {
			continue
		}
		f, ok := knownNumeric[name]
		if !ok {
			f = NumericField{Name: name, Label: strings.ReplaceAll(name, "_", " "), Min: openFieldMin, Max: openFieldMax}
		}
		numeric = append(numeric, f)
	}
	return numeric, categorical
}
