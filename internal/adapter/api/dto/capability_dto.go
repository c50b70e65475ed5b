package dto

import (
	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
)

// ParameterResponse descreve um argumento de capacidade
type ParameterResponse struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Required    bool     `json:"required"`
}

// CapabilityResponse representa uma capacidade liberada para o papel
type CapabilityResponse struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	MinRole     string              `json:"min_role"`
	Write       bool                `json:"write"`
	Destructive bool                `json:"destructive"`
	Parameters  []ParameterResponse `json:"parameters,omitempty"`
}

// CapabilityListResponse representa o catálogo visível para um papel
type CapabilityListResponse struct {
	Role      string               `json:"role"`
	ToolCount int                  `json:"tool_count"`
	Tools     []CapabilityResponse `json:"tools"`
}

// ToCapabilityListResponse converte as capacidades de um papel
func ToCapabilityListResponse(role user.Role, caps []capability.Capability) CapabilityListResponse {
	tools := make([]CapabilityResponse, 0, len(caps))
	for _, c := range caps {
		item := CapabilityResponse{
			Name:        c.Name,
			Description: c.Description,
			MinRole:     c.MinRole.String(),
			Write:       c.Write,
			Destructive: c.Destructive,
		}
		for _, p := range c.Parameters {
			item.Parameters = append(item.Parameters, ParameterResponse(p))
		}
		tools = append(tools, item)
	}
	return CapabilityListResponse{Role: role.String(), ToolCount: len(tools), Tools: tools}
}
