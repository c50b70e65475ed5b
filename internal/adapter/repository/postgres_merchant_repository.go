package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/merchant"
	"github.com/hugohenrick/nexpos-assistant/internal/infrastructure/database"
)

const merchantColumns = "id, name, category, region, contact, phone, address, devices, status, onboarded"

// PostgresMerchantRepository implementa a interface merchant.Repository usando PostgreSQL
type PostgresMerchantRepository struct {
	db *database.PostgresDB
}

// NewPostgresMerchantRepository cria uma nova instância de PostgresMerchantRepository
func NewPostgresMerchantRepository(db *database.PostgresDB) *PostgresMerchantRepository {
	return &PostgresMerchantRepository{db: db}
}

func scanMerchant(row pgx.Row) (*merchant.Merchant, error) {
	var m merchant.Merchant
	var status string
	err := row.Scan(&m.ID, &m.Name, &m.Category, &m.Region, &m.Contact, &m.Phone, &m.Address, &m.Devices, &status, &m.Onboarded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMerchantNotFound
		}
		return nil, fmt.Errorf("falha ao ler estabelecimento: %w", err)
	}
	m.Status = merchant.Status(status)
	return &m, nil
}

// FindByID implementa merchant.Repository.FindByID
func (r *PostgresMerchantRepository) FindByID(ctx context.Context, id string) (*merchant.Merchant, error) {
	row := r.db.Pool().QueryRow(ctx, "SELECT "+merchantColumns+" FROM merchants WHERE id = $1", merchant.NormalizeID(id))
	return scanMerchant(row)
}

// List implementa merchant.Repository.List
func (r *PostgresMerchantRepository) List(ctx context.Context) ([]*merchant.Merchant, error) {
	rows, err := r.db.Pool().Query(ctx, "SELECT "+merchantColumns+" FROM merchants ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("falha ao listar estabelecimentos: %w", err)
	}
	defer rows.Close()

	var merchants []*merchant.Merchant
	for rows.Next() {
		m, err := scanMerchant(rows)
		if err != nil {
			return nil, err
		}
		merchants = append(merchants, m)
	}
	return merchants, rows.Err()
}

// Create implementa merchant.Repository.Create
func (r *PostgresMerchantRepository) Create(ctx context.Context, m *merchant.Merchant) error {
	_, err := r.db.Pool().Exec(ctx, `
		INSERT INTO merchants (`+merchantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.Name, m.Category, m.Region, m.Contact, m.Phone, m.Address, m.Devices, string(m.Status), m.Onboarded)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrMerchantDuplicateKey
		}
		return fmt.Errorf("falha ao inserir estabelecimento: %w", err)
	}
	return nil
}

// Upsert implementa merchant.Repository.Upsert
func (r *PostgresMerchantRepository) Upsert(ctx context.Context, m *merchant.Merchant) error {
	return upsertMerchant(ctx, r.db.Pool(), m)
}

func upsertMerchant(ctx context.Context, q execer, m *merchant.Merchant) error {
	_, err := q.Exec(ctx, `
		INSERT INTO merchants (`+merchantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, category = EXCLUDED.category, region = EXCLUDED.region,
			contact = EXCLUDED.contact, phone = EXCLUDED.phone, address = EXCLUDED.address,
			devices = EXCLUDED.devices, status = EXCLUDED.status, onboarded = EXCLUDED.onboarded`,
		m.ID, m.Name, m.Category, m.Region, m.Contact, m.Phone, m.Address, m.Devices, string(m.Status), m.Onboarded)
	if err != nil {
		return fmt.Errorf("falha ao gravar estabelecimento: %w", err)
	}
	return nil
}

// UpdateField implementa merchant.Repository.UpdateField
func (r *PostgresMerchantRepository) UpdateField(ctx context.Context, id string, field merchant.Field, value interface{}) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, "SELECT "+merchantColumns+" FROM merchants WHERE id = $1 FOR UPDATE", merchant.NormalizeID(id))
		m, err := scanMerchant(row)
		if err != nil {
			return err
		}
		if err := m.Apply(field, value); err != nil {
			return err
		}
		return upsertMerchant(ctx, tx, m)
	})
}
