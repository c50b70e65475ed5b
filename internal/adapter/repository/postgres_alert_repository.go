package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/alert"
	"github.com/hugohenrick/nexpos-assistant/internal/infrastructure/database"
)

const alertColumns = "id, type, device_id, merchant, time, severity"

// PostgresAlertRepository implementa a interface alert.Repository usando PostgreSQL
type PostgresAlertRepository struct {
	db *database.PostgresDB
}

// NewPostgresAlertRepository cria uma nova instância de PostgresAlertRepository
func NewPostgresAlertRepository(db *database.PostgresDB) *PostgresAlertRepository {
	return &PostgresAlertRepository{db: db}
}

func scanAlert(row pgx.Row) (*alert.Alert, error) {
	var a alert.Alert
	var severity string
	if err := row.Scan(&a.ID, &a.Type, &a.DeviceID, &a.Merchant, &a.Time, &severity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("falha ao ler alerta: %w", err)
	}
	a.Severity = alert.Severity(severity)
	return &a, nil
}

// List implementa alert.Repository.List
func (r *PostgresAlertRepository) List(ctx context.Context) ([]*alert.Alert, error) {
	rows, err := r.db.Pool().Query(ctx, "SELECT "+alertColumns+" FROM alerts ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("falha ao listar alertas: %w", err)
	}
	defer rows.Close()

	var alerts []*alert.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// FindByID implementa alert.Repository.FindByID
func (r *PostgresAlertRepository) FindByID(ctx context.Context, id string) (*alert.Alert, error) {
	return scanAlert(r.db.Pool().QueryRow(ctx, "SELECT "+alertColumns+" FROM alerts WHERE id = $1", strings.ToUpper(id)))
}

// Create implementa alert.Repository.Create
func (r *PostgresAlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	a.ID = strings.ToUpper(strings.TrimSpace(a.ID))
	_, err := r.db.Pool().Exec(ctx, "INSERT INTO alerts ("+alertColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		a.ID, a.Type, a.DeviceID, a.Merchant, a.Time, string(a.Severity))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlertDuplicateKey
		}
		return fmt.Errorf("falha ao inserir alerta: %w", err)
	}
	return nil
}

// Delete implementa alert.Repository.Delete
func (r *PostgresAlertRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, "DELETE FROM alerts WHERE id = $1", strings.ToUpper(id))
	if err != nil {
		return fmt.Errorf("falha ao remover alerta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlertNotFound
	}
	return nil
}
