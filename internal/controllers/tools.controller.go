package controllers

import (
	"errors"
	"net/http"

	"diskusage/internal/services"

	"github.com/gin-gonic/gin"
)

// ToolsController serves registry tools over HTTP
type ToolsController struct {
	registry *services.ToolRegistry
}

// NewToolsController creates a controller backed by registry
func NewToolsController(registry *services.ToolRegistry) *ToolsController {
	return &ToolsController{registry: registry}
}

// ListTools returns the name and description of every registered tool
func (tc *ToolsController) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": tc.registry.Info()})
}

// CallTool invokes the tool named in the path. A tool that reports an
// error mapping is still a successful call.
func (tc *ToolsController) CallTool(c *gin.Context) {
	result, err := tc.registry.Call(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
