package dto

import (
	"github.com/hugohenrick/nexpos-assistant/internal/domain/tenant"
)

// TenantResponse representa a estrutura de dados de resposta para tenant
type TenantResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Region          string `json:"region"`
	ActiveMerchants int    `json:"active_merchants"`
	ActiveDevices   int    `json:"active_devices"`
	Status          string `json:"status"`
}

// TenantListResponse representa a resposta de listagem de tenants
type TenantListResponse struct {
	Tenants    []TenantResponse `json:"tenants"`
	TotalCount int              `json:"total_count"`
}

// ToTenantResponse converte um modelo de domínio em uma resposta DTO
func ToTenantResponse(t *tenant.Tenant) TenantResponse {
	return TenantResponse{
		ID:              t.ID,
		Name:            t.Name,
		Region:          t.Region,
		ActiveMerchants: t.ActiveMerchants,
		ActiveDevices:   t.ActiveDevices,
		Status:          string(t.Status),
	}
}

// ToTenantListResponse converte uma lista de tenants para o formato de resposta
func ToTenantListResponse(tenants []*tenant.Tenant) TenantListResponse {
	response := TenantListResponse{
		Tenants:    make([]TenantResponse, len(tenants)),
		TotalCount: len(tenants),
	}
	for i, t := range tenants {
		response.Tenants[i] = ToTenantResponse(t)
	}
	return response
}
