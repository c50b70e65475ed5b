// Package capability mantém o catálogo imutável de ações que o assistente
// pode executar e o papel mínimo exigido por cada uma.
package capability

import (
	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
)

// Nomes das capacidades referenciadas pelas rotas do diálogo
const (
	GetDeviceStatus  = "get_device_status"
	ListDevices      = "list_devices"
	ListMerchants    = "list_merchants"
	GetReport        = "get_report"
	GetTransactions  = "get_transactions"
	SearchFAQ        = "search_faq"
	AcknowledgeAlert = "acknowledge_alert"
	GetUserActivity  = "get_user_activity"
	AddDevice        = "add_device"
	DisableDevice    = "disable_device"
	CreateMerchant   = "create_merchant"
	ListTenants      = "list_tenants"
	UpdateTenant     = "update_tenant"
)

// Parameter descreve um argumento aceito pela capacidade
type Parameter struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Enum        []string `json:"enum,omitempty" yaml:"enum"`
	Required    bool     `json:"required" yaml:"required"`
}

// Capability é uma ação nomeada com papel mínimo
type Capability struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	MinRole     user.Role   `json:"min_role"`
	Parameters  []Parameter `json:"parameters,omitempty"`
	Write       bool        `json:"write"`
	Destructive bool        `json:"destructive"`
}

// RequiredParameters retorna os nomes dos parâmetros obrigatórios
func (c Capability) RequiredParameters() []string {
	var names []string
	for _, p := range c.Parameters {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}
