package repository

import (
	"context"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/faq"
)

// MemoryFAQRepository implementa faq.Repository em memória
type MemoryFAQRepository struct {
	table *memoryTable[faq.Entry]
}

// NewMemoryFAQRepository cria o repositório com os tópicos iniciais
func NewMemoryFAQRepository(initial ...*faq.Entry) *MemoryFAQRepository {
	r := &MemoryFAQRepository{table: newMemoryTable[faq.Entry]()}
	for _, e := range initial {
		r.table.put(e.Key, e)
	}
	return r
}

// List implementa faq.Repository.List
func (r *MemoryFAQRepository) List(ctx context.Context) ([]*faq.Entry, error) {
	return r.table.list(nil), nil
}

// FindByKey implementa faq.Repository.FindByKey
func (r *MemoryFAQRepository) FindByKey(ctx context.Context, key string) (*faq.Entry, error) {
	e, ok := r.table.get(strings.ToLower(strings.TrimSpace(key)))
	if !ok {
		return nil, ErrFAQNotFound
	}
	return e, nil
}

// Search implementa faq.Repository.Search
func (r *MemoryFAQRepository) Search(ctx context.Context, query string, limit int) ([]*faq.Entry, error) {
	found := r.table.list(func(e *faq.Entry) bool { return e.Matches(query) })
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}
