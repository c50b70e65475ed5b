package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/api/controller"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
)

// SetupAuthRoutes configura as rotas para autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController, jwtService *auth.JWTService, demoLogin bool) {
	authRouter := router.Group("/auth")
	{
		// Rota de login (não requer autenticação)
		authRouter.POST("/login", authController.Login)
		if demoLogin {
			authRouter.GET("/login", authController.DemoLogin)
		}

		// Rota para renovar token
		authRouter.POST("/refresh-token", authController.RefreshToken)

		// Rota para obter informações do usuário logado (requer autenticação)
		authRouter.GET("/me", auth.JWTAuthMiddleware(jwtService), authController.Me)
	}
}
