package tenant

import (
	"context"

	"github.com/gin-gonic/gin"
)

type contextKey struct{}

// GinKey é a chave em que a autenticação guarda o tenant no contexto do Gin
const GinKey = "tenant_id"

// SetTenantIDContext define o tenant ID no contexto
func SetTenantIDContext(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, contextKey{}, tenantID)
}

// GetTenantIDFromContext obtém o tenant ID do contexto. Vazio quando ausente.
func GetTenantIDFromContext(ctx context.Context) string {
	tenantID, _ := ctx.Value(contextKey{}).(string)
	return tenantID
}

// GetTenantID obtém o tenant ID definido pela autenticação
func GetTenantID(c *gin.Context) string {
	return c.GetString(GinKey)
}
