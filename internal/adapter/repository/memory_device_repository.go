package repository

import (
	"context"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/device"
)

// MemoryDeviceRepository implementa device.Repository em memória
type MemoryDeviceRepository struct {
	table *memoryTable[device.Device]
}

// NewMemoryDeviceRepository cria o repositório com os terminais iniciais
func NewMemoryDeviceRepository(initial ...*device.Device) *MemoryDeviceRepository {
	r := &MemoryDeviceRepository{table: newMemoryTable[device.Device]()}
	for _, d := range initial {
		r.table.put(d.ID, d)
	}
	return r
}

// FindByID implementa device.Repository.FindByID
func (r *MemoryDeviceRepository) FindByID(ctx context.Context, id string) (*device.Device, error) {
	d, ok := r.table.get(device.NormalizeID(id))
	if !ok {
		return nil, ErrDeviceNotFound
	}
	return d, nil
}

// List implementa device.Repository.List
func (r *MemoryDeviceRepository) List(ctx context.Context, filter device.Filter) ([]*device.Device, error) {
	return r.table.list(filter.Match), nil
}

// Create implementa device.Repository.Create
func (r *MemoryDeviceRepository) Create(ctx context.Context, d *device.Device) error {
	if !r.table.insert(d.ID, d) {
		return ErrDeviceDuplicateKey
	}
	return nil
}

// Upsert implementa device.Repository.Upsert
func (r *MemoryDeviceRepository) Upsert(ctx context.Context, d *device.Device) error {
	r.table.put(d.ID, d)
	return nil
}

// UpdateField implementa device.Repository.UpdateField
func (r *MemoryDeviceRepository) UpdateField(ctx context.Context, id string, field device.Field, value interface{}) error {
	_, found, err := r.table.update(device.NormalizeID(id), func(d *device.Device) error {
		return d.Apply(field, value)
	})
	if !found {
		return ErrDeviceNotFound
	}
	return err
}
