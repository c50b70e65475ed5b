package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/api/controller"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
)

// SetupCapabilityRoutes configura a listagem de capacidades
func SetupCapabilityRoutes(router *gin.RouterGroup, capabilityController *controller.CapabilityController, jwtService *auth.JWTService) {
	router.GET("/capabilities", auth.JWTAuthMiddleware(jwtService), capabilityController.List)
}

// SetupLegacyRoutes mantém os caminhos usados pelo cliente web antigo
func SetupLegacyRoutes(router *gin.RouterGroup, authController *controller.AuthController, capabilityController *controller.CapabilityController, healthController *controller.HealthController, demoLogin bool) {
	router.GET("/tools", capabilityController.List)
	router.GET("/health", healthController.Check)
	if demoLogin {
		router.GET("/auth/login", authController.DemoLogin)
	}
}
