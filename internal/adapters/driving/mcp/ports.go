package mcp

import (
	"github.com/custodia-labs/yieldcast/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Artifacts exposes the loaded schema and encoders.
	Artifacts driving.ArtifactService

	// Prediction runs the model.
	Prediction driving.PredictionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Artifacts == nil {
		return ErrMissingArtifactService
	}
	if p.Prediction == nil {
		return ErrMissingPredictionService
	}
	return nil
}
