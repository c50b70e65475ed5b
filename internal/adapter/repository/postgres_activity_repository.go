package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/activity"
	"github.com/hugohenrick/nexpos-assistant/internal/infrastructure/database"
)

// PostgresActivityRepository implementa a interface activity.Repository usando PostgreSQL
type PostgresActivityRepository struct {
	db *database.PostgresDB
}

// NewPostgresActivityRepository cria uma nova instância de PostgresActivityRepository
func NewPostgresActivityRepository(db *database.PostgresDB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

// Record implementa activity.Repository.Record
func (r *PostgresActivityRepository) Record(ctx context.Context, e *activity.Entry) error {
	_, err := r.db.Pool().Exec(ctx, `
		INSERT INTO user_activity (username, action, target, operation_id, ip, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.User, e.Action, e.Target, e.OperationID, e.IP, e.Timestamp)
	if err != nil {
		return fmt.Errorf("falha ao registrar atividade: %w", err)
	}
	return nil
}

// List implementa activity.Repository.List
func (r *PostgresActivityRepository) List(ctx context.Context, limit int) ([]*activity.Entry, error) {
	query := "SELECT username, action, target, operation_id, ip, occurred_at FROM user_activity ORDER BY occurred_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar atividade: %w", err)
	}
	defer rows.Close()

	var entries []*activity.Entry
	for rows.Next() {
		var e activity.Entry
		if err := rows.Scan(&e.User, &e.Action, &e.Target, &e.OperationID, &e.IP, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("falha ao ler atividade: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
