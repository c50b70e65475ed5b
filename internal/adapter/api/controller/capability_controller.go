package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/api/dto"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
)

// CapabilityController expõe o catálogo de capacidades por papel
type CapabilityController struct {
	registry *capability.Registry
}

// NewCapabilityController cria uma nova instância de CapabilityController
func NewCapabilityController(registry *capability.Registry) *CapabilityController {
	return &CapabilityController{registry: registry}
}

// List lista as capacidades permitidas a um papel
// @Summary Lista capacidades
// @Description Sem o parâmetro role usa o papel do token
// @Tags capabilities
// @Produce json
// @Security BearerAuth
// @Param role query string false "Papel (viewer, manager, admin, super_admin)"
// @Success 200 {object} dto.CapabilityListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /capabilities [get]
func (c *CapabilityController) List(ctx *gin.Context) {
	role := user.RoleViewer
	if id, ok := auth.GetCurrentUser(ctx); ok {
		role = id.Role
	}

	if raw := ctx.Query("role"); raw != "" {
		parsed, err := user.ParseRole(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid role", err.Error()))
			return
		}
		role = parsed
	}

	ctx.JSON(http.StatusOK, dto.ToCapabilityListResponse(role, c.registry.ListForRole(role)))
}
