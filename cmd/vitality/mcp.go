// ABOUTME: CLI command for running the MCP server.
// ABOUTME: Exposes the scoring pipeline over stdio for AI assistants.
package main

import (
	"fmt"

	"github.com/harperreed/vitality/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server on stdio.

Exposes tools for computing recovery and sleep scores, reading trends
and score history, and recording raw biomarker readings. Add to your
Claude Desktop config:

  {
    "mcpServers": {
      "vitality": { "command": "vitality", "args": ["mcp"] }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(scoreHub, repo)
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}
		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
