package tenant

import (
	"context"
)

// Repository define a interface para operações de repositório de tenants
type Repository interface {
	// FindByID busca um tenant pelo ID
	FindByID(ctx context.Context, id string) (*Tenant, error)

	// List lista os tenants na ordem de cadastro
	List(ctx context.Context) ([]*Tenant, error)

	// Update aplica uma alteração parcial e retorna o tenant atualizado
	Update(ctx context.Context, id string, patch Patch) (*Tenant, error)
}
