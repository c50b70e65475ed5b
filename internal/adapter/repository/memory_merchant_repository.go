package repository

import (
	"context"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/merchant"
)

// MemoryMerchantRepository implementa merchant.Repository em memória
type MemoryMerchantRepository struct {
	table *memoryTable[merchant.Merchant]
}

// NewMemoryMerchantRepository cria o repositório com os estabelecimentos iniciais
func NewMemoryMerchantRepository(initial ...*merchant.Merchant) *MemoryMerchantRepository {
	r := &MemoryMerchantRepository{table: newMemoryTable[merchant.Merchant]()}
	for _, m := range initial {
		r.table.put(m.ID, m)
	}
	return r
}

// FindByID implementa merchant.Repository.FindByID
func (r *MemoryMerchantRepository) FindByID(ctx context.Context, id string) (*merchant.Merchant, error) {
	m, ok := r.table.get(merchant.NormalizeID(id))
	if !ok {
		return nil, ErrMerchantNotFound
	}
	return m, nil
}

// List implementa merchant.Repository.List
func (r *MemoryMerchantRepository) List(ctx context.Context) ([]*merchant.Merchant, error) {
	return r.table.list(nil), nil
}

// Create implementa merchant.Repository.Create
func (r *MemoryMerchantRepository) Create(ctx context.Context, m *merchant.Merchant) error {
	if !r.table.insert(m.ID, m) {
		return ErrMerchantDuplicateKey
	}
	return nil
}

// Upsert implementa merchant.Repository.Upsert
func (r *MemoryMerchantRepository) Upsert(ctx context.Context, m *merchant.Merchant) error {
	r.table.put(m.ID, m)
	return nil
}

// UpdateField implementa merchant.Repository.UpdateField
func (r *MemoryMerchantRepository) UpdateField(ctx context.Context, id string, field merchant.Field, value interface{}) error {
	_, found, err := r.table.update(merchant.NormalizeID(id), func(m *merchant.Merchant) error {
		return m.Apply(field, value)
	})
	if !found {
		return ErrMerchantNotFound
	}
	return err
}
