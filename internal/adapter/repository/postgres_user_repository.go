package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
	"github.com/hugohenrick/nexpos-assistant/internal/infrastructure/database"
)

const userColumns = "id, tenant_id, username, name, password, role, status"

// PostgresUserRepository implementa a interface user.Repository usando PostgreSQL
type PostgresUserRepository struct {
	db *database.PostgresDB
}

// NewPostgresUserRepository cria uma nova instância de PostgresUserRepository
func NewPostgresUserRepository(db *database.PostgresDB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	var role, status string
	if err := row.Scan(&u.ID, &u.TenantID, &u.Username, &u.Name, &u.Password, &role, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("falha ao ler usuário: %w", err)
	}

	parsed, err := user.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("usuário %s: %w", u.ID, err)
	}
	u.Role = parsed
	u.Status = user.Status(status)
	return &u, nil
}

// FindByID implementa user.Repository.FindByID
func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return scanUser(r.db.Pool().QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// FindByUsername implementa user.Repository.FindByUsername
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return scanUser(r.db.Pool().QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

// List implementa user.Repository.List
func (r *PostgresUserRepository) List(ctx context.Context) ([]*user.User, error) {
	rows, err := r.db.Pool().Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("falha ao listar usuários: %w", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
