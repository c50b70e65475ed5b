package tenant

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantValidator define a interface para validação de tenant
type TenantValidator interface {
	ValidateTenant(ctx context.Context, tenantID string) (bool, error)
}

// TenantMiddleware valida o tenant já definido no contexto pela autenticação.
// Deve ser registrado depois do middleware JWT.
func TenantMiddleware(validator TenantValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := GetTenantID(c)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    http.StatusBadRequest,
				"message": ErrTenantNotSpecified.Error(),
			})
			return
		}

		valid, err := validator.ValidateTenant(c.Request.Context(), tenantID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": "tenant validation failed",
			})
			return
		}

		if !valid {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": ErrTenantNotActive.Error(),
			})
			return
		}

		c.Next()
	}
}
