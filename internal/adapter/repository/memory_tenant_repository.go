package repository

import (
	"context"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/tenant"
)

// MemoryTenantRepository implementa tenant.Repository em memória
type MemoryTenantRepository struct {
	table *memoryTable[tenant.Tenant]
}

// NewMemoryTenantRepository cria o repositório com os tenants iniciais
func NewMemoryTenantRepository(initial ...*tenant.Tenant) *MemoryTenantRepository {
	r := &MemoryTenantRepository{table: newMemoryTable[tenant.Tenant]()}
	for _, t := range initial {
		r.table.put(t.ID, t)
	}
	return r
}

// FindByID implementa tenant.Repository.FindByID
func (r *MemoryTenantRepository) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, ok := r.table.get(id)
	if !ok {
		return nil, ErrTenantNotFound
	}
	return t, nil
}

// List implementa tenant.Repository.List
func (r *MemoryTenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	return r.table.list(nil), nil
}

// Update implementa tenant.Repository.Update
func (r *MemoryTenantRepository) Update(ctx context.Context, id string, patch tenant.Patch) (*tenant.Tenant, error) {
	t, found, err := r.table.update(id, func(t *tenant.Tenant) error {
		return t.Apply(patch)
	})
	if !found {
		return nil, ErrTenantNotFound
	}
	return t, err
}
