package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
	"github.com/hugohenrick/nexpos-assistant/pkg/tenant"
)

const identityKey = "identity"

// ErrorBody é o corpo JSON das respostas de falha de autenticação
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FailureMessage formata a falha de autenticação para o cliente
func FailureMessage(err error) string {
	if errors.Is(err, ErrExpiredToken) {
		return "auth failed: expired"
	}
	return "auth failed: invalid"
}

// BearerToken extrai o token do cabeçalho "Bearer <token>"
func BearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// JWTAuthMiddleware cria um middleware para autenticação JWT
func JWTAuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{
				Code:    http.StatusUnauthorized,
				Message: FailureMessage(ErrInvalidToken),
			})
			return
		}

		id, err := jwtService.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{
				Code:    http.StatusUnauthorized,
				Message: FailureMessage(err),
			})
			return
		}

		SetIdentity(c, id)
		c.Next()
	}
}

// SetIdentity armazena a identidade no contexto do Gin e do request
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
	c.Set("user_id", id.UserID)
	c.Set(tenant.GinKey, id.TenantID)
	c.Set("user_role", id.Role.String())
	c.Request = c.Request.WithContext(tenant.SetTenantIDContext(c.Request.Context(), id.TenantID))
}

// RoleAuthMiddleware exige que o papel do usuário seja pelo menos min
func RoleAuthMiddleware(min user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetCurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{
				Code:    http.StatusUnauthorized,
				Message: FailureMessage(ErrInvalidToken),
			})
			return
		}

		if !id.Role.AtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorBody{
				Code:    http.StatusForbidden,
				Message: "access denied",
			})
			return
		}

		c.Next()
	}
}

// GetCurrentUser obtém a identidade do usuário atual do contexto
func GetCurrentUser(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
