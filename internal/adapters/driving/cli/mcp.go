package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/yieldcast/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can request
yield estimates.

Tools:
  predict_yield        Estimate yield from numeric inputs and labels
  predict_encoded      Estimate yield from an encoded feature row
  list_categories      Labels the model was trained on
  feature_importances  Split counts per feature

Resources:
  yieldcast://schema              Ordered feature list
  yieldcast://categories/{column} Labels for one column

By default the server communicates over stdio. Use --port to serve
HTTP instead.

Examples:
  yieldcast mcp serve
  yieldcast mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	if err := loadArtifacts(cmd.Context()); err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Artifacts:  artifactService,
		Prediction: predictionService,
	}, version)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
