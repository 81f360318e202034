package controllers

import (
	"net/http"

	"diskusage/internal/services"

	"github.com/gin-gonic/gin"
)

// GetHealth reports that the server is up along with host details
func GetHealth(c *gin.Context) {
	hostStatus, err := services.GetHostStatus()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "host_error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": services.Version, "host": hostStatus})
}
