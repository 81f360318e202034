package routes

import (
	"diskusage/internal/controllers"
	"diskusage/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
)

func RegisterToolRoutes(r *gin.Engine, registry *services.ToolRegistry) {
	tc := controllers.NewToolsController(registry)
	tools := r.Group("/tools")
	{
		tools.GET("", tc.ListTools)
		tools.POST("/:name", tc.CallTool)
	}
}

// RegisterMCPRoutes mounts the MCP streamable HTTP transport at /mcp and
// returns it so the caller can shut it down with the HTTP server
func RegisterMCPRoutes(r *gin.Engine, registry *services.ToolRegistry) *server.StreamableHTTPServer {
	mcpHandler := services.NewStreamableHTTPHandler(registry)
	r.Any("/mcp", gin.WrapH(mcpHandler))
	return mcpHandler
}
