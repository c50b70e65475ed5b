package repository

import (
	"context"
	"errors"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/tenant"
	pkgtenant "github.com/hugohenrick/nexpos-assistant/pkg/tenant"
)

// TenantValidator implementa a interface para validação de tenant
type TenantValidator struct {
	repository tenant.Repository
}

// NewTenantValidator cria uma nova instância de TenantValidator
func NewTenantValidator(repository tenant.Repository) pkgtenant.TenantValidator {
	return &TenantValidator{
		repository: repository,
	}
}

// ValidateTenant verifica se um tenant existe e está ativo
func (v *TenantValidator) ValidateTenant(ctx context.Context, tenantID string) (bool, error) {
	t, err := v.repository.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return t.IsActive(), nil
}
