package tui

import "errors"

// ErrMissingArtifactService is returned when the artifact service is not provided.
var ErrMissingArtifactService = errors.New("tui: artifact service is required")

// ErrMissingPredictionService is returned when the prediction service is not provided.
var ErrMissingPredictionService = errors.New("tui: prediction service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
