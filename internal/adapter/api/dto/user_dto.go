package dto

import (
	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
)

// UserResponse representa a resposta com dados de um usuário
type UserResponse struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ToUserResponse converte um usuário do domínio para DTO de resposta
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		TenantID: u.TenantID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role.String(),
	}
}

// IdentityResponse converte a identidade do token para DTO de resposta
func IdentityResponse(id auth.Identity) UserResponse {
	return UserResponse{
		ID:       id.UserID,
		TenantID: id.TenantID,
		Username: id.Username,
		Name:     id.Name,
		Role:     id.Role.String(),
	}
}
