package device

import (
	"context"
)

// Repository define a interface para operações de repositório de terminais.
// Não há garantia transacional: a última escrita prevalece.
type Repository interface {
	// FindByID busca um terminal pelo ID
	FindByID(ctx context.Context, id string) (*Device, error)

	// List lista os terminais na ordem de cadastro
	List(ctx context.Context, filter Filter) ([]*Device, error)

	// Create cadastra um terminal novo. ID repetido retorna domain.ErrConflict
	Create(ctx context.Context, d *Device) error

	// Upsert insere ou substitui o terminal
	Upsert(ctx context.Context, d *Device) error

	// UpdateField altera um campo de um terminal existente
	UpdateField(ctx context.Context, id string, field Field, value interface{}) error
}
