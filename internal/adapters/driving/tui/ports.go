// Package tui provides an interactive terminal user interface for yieldcast.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/yieldcast/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Artifacts loads the model, encoders and feature list.
	Artifacts driving.ArtifactService

	// Prediction encodes form input and runs the model.
	Prediction driving.PredictionService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	artifacts driving.ArtifactService,
	prediction driving.PredictionService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Artifacts:  artifacts,
		Prediction: prediction,
		Settings:   settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Artifacts == nil {
		return ErrMissingArtifactService
	}
	if p.Prediction == nil {
		return ErrMissingPredictionService
	}
	return nil
}
