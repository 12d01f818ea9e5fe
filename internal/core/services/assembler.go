package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

// Assemble builds the feature row for schema from raw values.
//
// The row holds exactly the schema names in schema order; keys not in
// the schema are ignored. Values that are missing, NaN or not numeric
// become domain.SubstituteValue and are reported as substitutions.
// Assemble never fails and has no side effects.
func Assemble(raw map[string]any, schema domain.FeatureSchema) (domain.Row, []domain.Substitution) {
	names := schema.Names()
	values := make([]float64, len(names))
	var subs []domain.Substitution

	for i, name := range names {
		v, present := raw[name]
		if !present {
			values[i] = domain.SubstituteValue
			subs = append(subs, domain.Substitution{Feature: name, Reason: domain.ReasonMissing})
			continue
		}

		f, reason := coerce(v)
		if reason != "" {
			values[i] = domain.SubstituteValue
			subs = append(subs, domain.Substitution{Feature: name, Raw: v, Reason: reason})
			continue
		}
		values[i] = f
	}

	return domain.NewRow(names, values), subs
}

// coerce converts v to float64. A non-empty reason means v was unusable.
func coerce(v any) (float64, domain.SubstitutionReason) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, domain.ReasonMissing
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case bool:
		if x {
			f = 1
		}
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, domain.ReasonNonNumeric
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, domain.ReasonMissing
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, domain.ReasonNonNumeric
		}
		f = parsed
	default:
		return 0, domain.ReasonNonNumeric
	}

	if math.IsNaN(f) {
		return 0, domain.ReasonNotANumber
	}
	return f, ""
}
