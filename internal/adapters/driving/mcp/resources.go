package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "yieldcast://"

// schemaInfo is the JSON body of the schema resource.
type schemaInfo struct {
	Source   string   `json:"source"`
	Features []string `json:"features"`
	Encoded  []string `json:"encoded_columns"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "schema",
		Name:        "schema",
		Description: "Ordered feature list the model consumes and the encoded categorical columns",
		MIMEType:    "application/json",
	}, s.handleSchemaResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "categories/{column}",
		Name:        "categories",
		Description: "Trained labels for one categorical column, in code order",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)
}

func (s *Server) handleSchemaResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	schema, err := s.ports.Artifacts.Schema()
	if err != nil {
		return nil, toolError(err)
	}
	encoders, err := s.ports.Artifacts.Encoders()
	if err != nil {
		return nil, toolError(err)
	}

	info := schemaInfo{
		Source:   s.ports.Artifacts.Status().Source,
		Features: schema.Names(),
		Encoded:  encoders.Columns(),
	}
	return jsonResult(req.Params.URI, info)
}

func (s *Server) handleCategoriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	column := extractColumn(req.Params.URI)
	if column == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	labels, err := s.ports.Prediction.Categories(column)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResult(req.Params.URI, labels)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractColumn extracts the column from a URI like yieldcast://categories/{column}.
func extractColumn(uri string) string {
	const prefix = uriScheme + "categories/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	column := strings.TrimPrefix(uri, prefix)
	if strings.Contains(column, "/") {
		return ""
	}
	return column
}
