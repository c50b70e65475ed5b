package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/api/controller"
)

// SetupHealthRoutes configura a verificação de saúde
func SetupHealthRoutes(router *gin.RouterGroup, healthController *controller.HealthController) {
	router.GET("/health", healthController.Check)
}
