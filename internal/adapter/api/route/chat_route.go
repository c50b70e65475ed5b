package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/api/controller"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
	"github.com/hugohenrick/nexpos-assistant/pkg/tenant"
)

// SetupChatRoutes configura as rotas de conversa. Exigem token e tenant ativo.
func SetupChatRoutes(router *gin.RouterGroup, chatController *controller.ChatController, jwtService *auth.JWTService, validator tenant.TenantValidator) {
	chatRouter := router.Group("/chat")
	chatRouter.Use(auth.JWTAuthMiddleware(jwtService), tenant.TenantMiddleware(validator))
	{
		chatRouter.POST("/message", chatController.SendMessage)
		chatRouter.GET("/history", chatController.GetHistory)
		chatRouter.DELETE("/history", chatController.DeleteHistory)
	}
}

// SetupWebSocketRoutes configura o websocket de conversa. A autenticação
// acontece a cada envelope, não no handshake.
func SetupWebSocketRoutes(router gin.IRouter, wsController *controller.WebSocketController) {
	router.GET("/ws/chat", wsController.Chat)
}
