package repository

import (
	"context"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/alert"
)

// MemoryAlertRepository implementa alert.Repository em memória
type MemoryAlertRepository struct {
	table *memoryTable[alert.Alert]
}

// NewMemoryAlertRepository cria o repositório com os alertas iniciais
func NewMemoryAlertRepository(initial ...*alert.Alert) *MemoryAlertRepository {
	r := &MemoryAlertRepository{table: newMemoryTable[alert.Alert]()}
	for _, a := range initial {
		r.table.put(a.ID, a)
	}
	return r
}

// List implementa alert.Repository.List
func (r *MemoryAlertRepository) List(ctx context.Context) ([]*alert.Alert, error) {
	return r.table.list(nil), nil
}

// FindByID implementa alert.Repository.FindByID
func (r *MemoryAlertRepository) FindByID(ctx context.Context, id string) (*alert.Alert, error) {
	a, ok := r.table.get(strings.ToUpper(id))
	if !ok {
		return nil, ErrAlertNotFound
	}
	return a, nil
}

// Create implementa alert.Repository.Create
func (r *MemoryAlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	a.ID = strings.ToUpper(strings.TrimSpace(a.ID))
	if !r.table.insert(a.ID, a) {
		return ErrAlertDuplicateKey
	}
	return nil
}

// Delete implementa alert.Repository.Delete
func (r *MemoryAlertRepository) Delete(ctx context.Context, id string) error {
	if !r.table.remove(strings.ToUpper(id)) {
		return ErrAlertNotFound
	}
	return nil
}
