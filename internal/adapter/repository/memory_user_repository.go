package repository

import (
	"context"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
)

// MemoryUserRepository implementa user.Repository em memória
type MemoryUserRepository struct {
	table *memoryTable[user.User]
}

// NewMemoryUserRepository cria o repositório com os usuários iniciais
func NewMemoryUserRepository(initial ...*user.User) *MemoryUserRepository {
	r := &MemoryUserRepository{table: newMemoryTable[user.User]()}
	for _, u := range initial {
		r.table.put(u.ID, u)
	}
	return r
}

// FindByID implementa user.Repository.FindByID
func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := r.table.get(id)
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// FindByUsername implementa user.Repository.FindByUsername
func (r *MemoryUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	found := r.table.list(func(u *user.User) bool {
		return strings.EqualFold(u.Username, strings.TrimSpace(username))
	})
	if len(found) == 0 {
		return nil, ErrUserNotFound
	}
	return found[0], nil
}

// List implementa user.Repository.List
func (r *MemoryUserRepository) List(ctx context.Context) ([]*user.User, error) {
	return r.table.list(nil), nil
}
