package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/api/dto"
	"github.com/hugohenrick/nexpos-assistant/internal/domain"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/tenant"
	"github.com/hugohenrick/nexpos-assistant/pkg/logger"
)

// TenantController gerencia as requisições administrativas de tenants
type TenantController struct {
	tenantRepository tenant.Repository
	log              logger.Logger
}

// NewTenantController cria uma nova instância de TenantController
func NewTenantController(tenantRepository tenant.Repository, log logger.Logger) *TenantController {
	return &TenantController{
		tenantRepository: tenantRepository,
		log:              log,
	}
}

// List lista os tenants da plataforma
// @Summary Lista tenants
// @Description Lista todos os tenants (apenas super_admin)
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TenantListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tenants [get]
func (c *TenantController) List(ctx *gin.Context) {
	tenants, err := c.tenantRepository.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to list tenants", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTenantListResponse(tenants))
}

// GetByID busca um tenant pelo ID
// @Summary Busca tenant por ID
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do tenant"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tenants/{id} [get]
func (c *TenantController) GetByID(ctx *gin.Context) {
	t, err := c.tenantRepository.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Tenant not found", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to load tenant", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTenantResponse(t))
}

// UpdateStatus atualiza o status de um tenant
// @Summary Atualiza o status de um tenant
// @Description Ativa ou suspende um tenant (apenas super_admin)
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do tenant"
// @Param status path string true "Novo status (active/suspended)"
// @Success 200 {object} dto.TenantResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tenants/{id}/status/{status} [patch]
func (c *TenantController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")
	status, err := tenant.ParseStatus(ctx.Param("status"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid status", "accepted values: active, suspended"))
		return
	}

	t, err := c.tenantRepository.Update(ctx.Request.Context(), id, tenant.Patch{Status: string(status)})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Tenant not found", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to update tenant", err.Error()))
		return
	}

	c.log.Info("tenant status updated", "tenant_id", id, "status", string(status), "by", ctx.GetString("user_id"))
	ctx.JSON(http.StatusOK, dto.ToTenantResponse(t))
}
