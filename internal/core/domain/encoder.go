package domain

import (
	"fmt"
	"sort"
)

// UnseenCode is the code assigned to a label the encoder never saw in training.
const UnseenCode = -1

// EncodedSuffix is appended to a categorical column name to form its feature name.
const EncodedSuffix = "_Encoded"

// EncodedFeatureName returns the schema feature name for a categorical column.
func EncodedFeatureName(column string) string {
	return column + EncodedSuffix
}

// LabelEncoder maps the labels of one categorical column to integer codes.
// A label's code is its position in Classes, fixed at training time.
type LabelEncoder struct {
	column  string
	classes []string
	codes   map[string]int
}

// NewLabelEncoder builds an encoder from the trained class labels, in code order.
func NewLabelEncoder(column string, classes []string) (*LabelEncoder, error) {
	if column == "" {
		return nil, fmt.Errorf("%w: encoder has no column name", ErrInvalidInput)
	}

	codes := make(map[string]int, len(classes))
	for i, label := range classes {
		if _, dup := codes[label]; dup {
			return nil, fmt.Errorf("%w: encoder %q repeats label %q", ErrInvalidInput, column, label)
		}
		codes[label] = i
	}

	owned := make([]string, len(classes))
	copy(owned, classes)
	return &LabelEncoder{column: column, classes: owned, codes: codes}, nil
}

// Column returns the categorical column this encoder belongs to.
func (e *LabelEncoder) Column() string {
	return e.column
}

// Classes returns a copy of the known labels in code order.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Known returns true if label was seen during training.
func (e *LabelEncoder) Known(label string) bool {
	_, ok := e.codes[label]
	return ok
}

// Encode returns the trained code for label, or UnseenCode.
func (e *LabelEncoder) Encode(label string) int {
	if code, ok := e.codes[label]; ok {
		return code
	}
	return UnseenCode
}

// EncoderTable holds one encoder per categorical column.
type EncoderTable map[string]*LabelEncoder

// Columns returns the encoded column names, sorted.
func (t EncoderTable) Columns() []string {
	cols := make([]string, 0, len(t))
	for col := range t {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Lookup returns the encoder for column or an ErrUnknownColumn error.
func (t EncoderTable) Lookup(column string) (*LabelEncoder, error) {
	enc, ok := t[column]
	if !ok || enc == nil {
		return nil, fmt.Errorf("%w: no encoder found for %s", ErrUnknownColumn, column)
	}
	return enc, nil
}
