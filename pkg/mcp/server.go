package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate/schema"
)

// Server wraps the MCP server with the bridge's room control functionality
type Server struct {
	mcpServer  *server.MCPServer
	controller climate.Controller
	validator  *schema.Validator
}

// NewServer creates a new MCP server for room control
func NewServer(controller climate.Controller, validator *schema.Validator) *Server {
	s := &Server{
		controller: controller,
		validator:  validator,
	}

	// Create MCP server
	s.mcpServer = server.NewMCPServer(
		"termowifi-bridge",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register all tools
	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
