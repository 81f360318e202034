package routes

import (
	"diskusage/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", controllers.GetHealth)
}
