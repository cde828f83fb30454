// ABOUTME: MCP server setup for the vitality scoring pipeline.
// ABOUTME: Wraps MCP server with the hub and storage repository.
package mcp

import (
	"context"

	"github.com/harperreed/vitality/internal/hub"
	"github.com/harperreed/vitality/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with pipeline access.
type Server struct {
	mcpServer *mcp.Server
	hub       *hub.Hub
	repo      storage.Repository
}

// NewServer creates a new MCP server over the hub and repository.
func NewServer(h *hub.Hub, repo storage.Repository) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "vitality",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		hub:       h,
		repo:      repo,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
