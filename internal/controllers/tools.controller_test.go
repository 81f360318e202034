package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"diskusage/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, registry *services.ToolRegistry) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tc := NewToolsController(registry)
	r := gin.New()
	r.GET("/tools", tc.ListTools)
	r.POST("/tools/:name", tc.CallTool)
	return r
}

func testRegistry(t *testing.T, fields map[string]string) *services.ToolRegistry {
	t.Helper()
	registry := services.NewToolRegistry()
	require.NoError(t, registry.Register(services.Tool{
		Name:        services.DiskUsageToolName,
		Description: "disk usage",
		Handler:     func(context.Context) map[string]string { return fields },
	}))
	return registry
}

func TestCallTool(t *testing.T) {
	r := newTestEngine(t, testRegistry(t, map[string]string{"total_gb": "500.0GB"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tools/get_disk_usage", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "500.0GB", body["total_gb"])
}

func TestCallToolErrorMappingIsOK(t *testing.T) {
	r := newTestEngine(t, testRegistry(t, map[string]string{"error": "device not found in df output: disk3s5"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tools/get_disk_usage", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "device not found")
}

func TestCallUnknownTool(t *testing.T) {
	r := newTestEngine(t, testRegistry(t, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tools/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "tool not found")
}

func TestListTools(t *testing.T) {
	r := newTestEngine(t, testRegistry(t, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tools", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Tools []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Tools, 1)
	assert.Equal(t, services.DiskUsageToolName, body.Tools[0].Name)
}
