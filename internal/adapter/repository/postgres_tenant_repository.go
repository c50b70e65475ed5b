package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/tenant"
	"github.com/hugohenrick/nexpos-assistant/internal/infrastructure/database"
)

const tenantColumns = "id, name, region, active_merchants, active_devices, status"

// PostgresTenantRepository implementa a interface tenant.Repository usando PostgreSQL
type PostgresTenantRepository struct {
	db *database.PostgresDB
}

// NewPostgresTenantRepository cria uma nova instância de PostgresTenantRepository
func NewPostgresTenantRepository(db *database.PostgresDB) *PostgresTenantRepository {
	return &PostgresTenantRepository{db: db}
}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	var status string
	if err := row.Scan(&t.ID, &t.Name, &t.Region, &t.ActiveMerchants, &t.ActiveDevices, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("falha ao ler tenant: %w", err)
	}
	t.Status = tenant.Status(status)
	return &t, nil
}

// FindByID implementa tenant.Repository.FindByID
func (r *PostgresTenantRepository) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	return scanTenant(r.db.Pool().QueryRow(ctx, "SELECT "+tenantColumns+" FROM tenants WHERE id = $1", id))
}

// List implementa tenant.Repository.List
func (r *PostgresTenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	rows, err := r.db.Pool().Query(ctx, "SELECT "+tenantColumns+" FROM tenants ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("falha ao listar tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// Update implementa tenant.Repository.Update
func (r *PostgresTenantRepository) Update(ctx context.Context, id string, patch tenant.Patch) (*tenant.Tenant, error) {
	var updated *tenant.Tenant
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		t, err := scanTenant(tx.QueryRow(ctx, "SELECT "+tenantColumns+" FROM tenants WHERE id = $1 FOR UPDATE", id))
		if err != nil {
			return err
		}
		if err := t.Apply(patch); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, "UPDATE tenants SET region = $2, status = $3 WHERE id = $1", t.ID, t.Region, string(t.Status)); err != nil {
			return fmt.Errorf("falha ao atualizar tenant: %w", err)
		}
		updated = t
		return nil
	})
	return updated, err
}
