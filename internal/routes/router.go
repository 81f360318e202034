package routes

import (
	"diskusage/internal/middleware"
	"diskusage/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
)

// NewRouter builds the HTTP engine serving the registry. The returned MCP
// transport must be shut down along with the HTTP server.
func NewRouter(registry *services.ToolRegistry) (*gin.Engine, *server.StreamableHTTPServer) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.SecurityHeadersMiddleware())

	RegisterHealthRoutes(r)
	RegisterToolRoutes(r, registry)
	mcpHandler := RegisterMCPRoutes(r, registry)

	return r, mcpHandler
}
