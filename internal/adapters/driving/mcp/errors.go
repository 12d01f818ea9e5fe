// Package mcp provides an MCP (Model Context Protocol) server adapter for yieldcast.
// It lets AI assistants request yield estimates and inspect the model.
package mcp

import "errors"

// ErrMissingArtifactService is returned when the artifact service is not provided.
var ErrMissingArtifactService = errors.New("mcp: artifact service is required")

// ErrMissingPredictionService is returned when the prediction service is not provided.
var ErrMissingPredictionService = errors.New("mcp: prediction service is required")
