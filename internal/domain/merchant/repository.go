package merchant

import (
	"context"
)

// Repository define a interface para operações de repositório de estabelecimentos
type Repository interface {
	// FindByID busca um estabelecimento pelo ID
	FindByID(ctx context.Context, id string) (*Merchant, error)

	// List lista os estabelecimentos na ordem de cadastro
	List(ctx context.Context) ([]*Merchant, error)

	// Create cadastra um estabelecimento. ID repetido retorna domain.ErrConflict
	Create(ctx context.Context, m *Merchant) error

	// Upsert insere ou substitui o estabelecimento
	Upsert(ctx context.Context, m *Merchant) error

	// UpdateField altera um campo de um estabelecimento existente
	UpdateField(ctx context.Context, id string, field Field, value interface{}) error
}
