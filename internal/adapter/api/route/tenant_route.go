package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/api/controller"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
)

// SetupTenantRoutes configura as rotas administrativas de tenants (apenas super_admin)
func SetupTenantRoutes(router *gin.RouterGroup, tenantController *controller.TenantController, jwtService *auth.JWTService) {
	tenantRouter := router.Group("/tenants")
	tenantRouter.Use(auth.JWTAuthMiddleware(jwtService), auth.RoleAuthMiddleware(user.RoleSuperAdmin))
	{
		tenantRouter.GET("", tenantController.List)
		tenantRouter.GET("/:id", tenantController.GetByID)
		tenantRouter.PATCH("/:id/status/:status", tenantController.UpdateStatus)
	}
}
