package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewSuitelintMCPServer creates an MCP server with the validation tools and
// resources registered. metadataPath may be empty, which limits tools to
// structural checks.
func NewSuitelintMCPServer(projectPath, metadataPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"suitelint",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, metadataPath)
	registerResources(s, projectPath)

	return s
}
