package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrArtifactUnavailable indicates a model artifact is missing or unreadable.
	// No prediction may be attempted while any artifact is unavailable.
	ErrArtifactUnavailable = errors.New("artifact unavailable")

	// ErrUnknownColumn indicates a categorical column has no trained encoder.
	// This is a configuration error: the form and the encoder table have drifted.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrPredictionFailed indicates the model could not evaluate a row.
	// The failure is transient; the caller may retry with adjusted inputs.
	ErrPredictionFailed = errors.New("prediction failed")

	// ErrImportancesUnavailable indicates the model exposes no usable
	// per-feature importance scores.
	ErrImportancesUnavailable = errors.New("feature importances unavailable")
)

// ArtifactError describes which artifact could not be loaded and from where.
// It matches ErrArtifactUnavailable with errors.Is.
type ArtifactError struct {
	// Kind is the artifact that failed.
	Kind ArtifactKind

	// Location is the file path or bundle entry that was read.
	Location string

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *ArtifactError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("%s artifact unavailable: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s artifact unavailable (%s): %v", e.Kind, e.Location, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrArtifactUnavailable.
func (e *ArtifactError) Is(target error) bool {
	return target == ErrArtifactUnavailable
}
