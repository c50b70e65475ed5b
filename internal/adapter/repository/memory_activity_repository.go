package repository

import (
	"context"
	"sync"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/activity"
)

// MemoryActivityRepository implementa activity.Repository em memória
type MemoryActivityRepository struct {
	mu      sync.RWMutex
	entries []*activity.Entry
}

// NewMemoryActivityRepository cria o log com as entradas iniciais (mais antigas primeiro)
func NewMemoryActivityRepository(initial ...*activity.Entry) *MemoryActivityRepository {
	r := &MemoryActivityRepository{}
	for _, e := range initial {
		c := *e
		r.entries = append(r.entries, &c)
	}
	return r
}

// Record implementa activity.Repository.Record
func (r *MemoryActivityRepository) Record(ctx context.Context, e *activity.Entry) error {
	c := *e
	r.mu.Lock()
	r.entries = append(r.entries, &c)
	r.mu.Unlock()
	return nil
}

// List implementa activity.Repository.List
func (r *MemoryActivityRepository) List(ctx context.Context, limit int) ([]*activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*activity.Entry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		c := *r.entries[i]
		out = append(out, &c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
