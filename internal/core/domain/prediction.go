package domain

import "math"

// YieldUnit is the unit of every yield estimate.
const YieldUnit = "kg/ha"

// DefaultLowYieldThreshold is the yield below which the low-yield advisory is shown.
const DefaultLowYieldThreshold = 100.0

// FormInput is one user-submitted prediction request as entered in a form.
type FormInput struct {
	// Numeric holds feature name to value for the numeric fields.
	Numeric map[string]float64 `json:"numeric"`

	// Categorical holds column name to human-readable label.
	Categorical map[string]string `json:"categorical"`
}

// Advisory is a hint attached to a prediction for display.
type Advisory string

// Advisories.
const (
	// AdvisoryNone means the yield looks plausible.
	AdvisoryNone Advisory = "none"

	// AdvisoryZero means the yield was clamped to, or predicted as, zero.
	AdvisoryZero Advisory = "zero"

	// AdvisoryLow means the yield is positive but below the low-yield threshold.
	AdvisoryLow Advisory = "low"
)

// Message returns the advisory text shown to the user, or "".
func (a Advisory) Message() string {
	switch a {
	case AdvisoryZero:
		return "The model predicted a yield of 0. This might indicate an issue with the input parameters."
	case AdvisoryLow:
		return "The predicted yield is very low. Please check the environmental factors."
	default:
		return ""
	}
}

// AdviseFor returns the advisory for a clamped yield.
func AdviseFor(yield, lowThreshold float64) Advisory {
	switch {
	case yield == 0:
		return AdvisoryZero
	case yield < lowThreshold:
		return AdvisoryLow
	default:
		return AdvisoryNone
	}
}

// ClampYield forces a raw model output into the non-negative range.
// NaN is treated as a degenerate output and clamped to zero.
func ClampYield(raw float64) float64 {
	if math.IsNaN(raw) || raw < 0 {
		return 0
	}
	return raw
}

// Prediction is the outcome of one inference call.
type Prediction struct {
	// RequestID identifies the request in logs.
	RequestID string `json:"request_id"`

	// Raw is the unclamped model output.
	Raw float64 `json:"raw"`

	// Yield is max(0, Raw).
	Yield float64 `json:"yield"`

	// Clamped is true if Yield differs from Raw.
	Clamped bool `json:"clamped"`

	// Advisory is the display hint for Yield.
	Advisory Advisory `json:"advisory"`

	// Row is the feature row the model consumed.
	Row Row `json:"row"`

	// Substitutions lists the fields defaulted during assembly.
	Substitutions []Substitution `json:"substitutions,omitempty"`

	// UnseenColumns lists categorical columns whose label was encoded as UnseenCode.
	UnseenColumns []string `json:"unseen_columns,omitempty"`
}

// NewPrediction clamps raw and derives the advisory.
func NewPrediction(requestID string, raw, lowThreshold float64, row Row) *Prediction {
	yield := ClampYield(raw)
	return &Prediction{
		RequestID: requestID,
		Raw:       raw,
		Yield:     yield,
		Clamped:   yield != raw,
		Advisory:  AdviseFor(yield, lowThreshold),
		Row:       row,
	}
}

// FeatureImportance is one feature's importance score.
type FeatureImportance struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
