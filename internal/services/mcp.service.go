package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServerName is advertised to MCP clients during initialization
const MCPServerName = "DiskUsage"

// Version of the tool server
const Version = "1.0.0"

// NewMCPServer exposes every registry tool as a zero-argument MCP tool.
// Results are sent as the JSON encoding of the tool's string map.
func NewMCPServer(registry *ToolRegistry) *server.MCPServer {
	s := server.NewMCPServer(MCPServerName, Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, tool := range registry.List() {
		s.AddTool(mcp.NewTool(tool.Name, mcp.WithDescription(tool.Description)), mcpHandler(tool))
	}

	return s
}

func mcpHandler(tool Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := json.Marshal(tool.Handler(ctx))
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}

// ServeStdio serves the registry over stdin/stdout until the client disconnects
func ServeStdio(registry *ToolRegistry) error {
	log.Printf("MCP server %s listening on stdio (%d tools)", MCPServerName, len(registry.List()))
	return server.ServeStdio(NewMCPServer(registry))
}

// NewStreamableHTTPHandler returns the MCP streamable HTTP transport for the registry
func NewStreamableHTTPHandler(registry *ToolRegistry) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(NewMCPServer(registry))
}
