// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The ArtifactStore owns the model, encoders and feature schema for the
// lifetime of the process; PredictionService turns form input into a
// clamped yield estimate using them.
package services
