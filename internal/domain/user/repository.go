package user

import (
	"context"
)

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByUsername busca um usuário pelo login
	FindByUsername(ctx context.Context, username string) (*User, error)

	// List lista todos os usuários
	List(ctx context.Context) ([]*User, error)
}
