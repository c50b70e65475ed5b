package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/device"
	"github.com/hugohenrick/nexpos-assistant/internal/infrastructure/database"
)

const deviceColumns = "id, name, merchant_id, region, status, battery, last_txn, model, firmware"

// PostgresDeviceRepository implementa a interface device.Repository usando PostgreSQL
type PostgresDeviceRepository struct {
	db *database.PostgresDB
}

// NewPostgresDeviceRepository cria uma nova instância de PostgresDeviceRepository
func NewPostgresDeviceRepository(db *database.PostgresDB) *PostgresDeviceRepository {
	return &PostgresDeviceRepository{db: db}
}

func scanDevice(row pgx.Row) (*device.Device, error) {
	var d device.Device
	var status string
	err := row.Scan(&d.ID, &d.Name, &d.MerchantID, &d.Region, &status, &d.Battery, &d.LastTxn, &d.Model, &d.Firmware)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("falha ao ler dispositivo: %w", err)
	}
	d.Status = device.Status(status)
	return &d, nil
}

// FindByID implementa device.Repository.FindByID
func (r *PostgresDeviceRepository) FindByID(ctx context.Context, id string) (*device.Device, error) {
	row := r.db.Pool().QueryRow(ctx, "SELECT "+deviceColumns+" FROM devices WHERE id = $1", device.NormalizeID(id))
	return scanDevice(row)
}

// List implementa device.Repository.List
func (r *PostgresDeviceRepository) List(ctx context.Context, filter device.Filter) ([]*device.Device, error) {
	rows, err := r.db.Pool().Query(ctx, `
		SELECT `+deviceColumns+` FROM devices
		WHERE ($1 = '' OR lower(region) = lower($1))
		  AND ($2 = '' OR lower(status) = lower($2))
		  AND ($3 = '' OR upper(merchant_id) = upper($3))
		ORDER BY created_at, id`,
		filter.Region, string(filter.Status), filter.MerchantID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar dispositivos: %w", err)
	}
	defer rows.Close()

	var devices []*device.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

// Create implementa device.Repository.Create
func (r *PostgresDeviceRepository) Create(ctx context.Context, d *device.Device) error {
	_, err := r.db.Pool().Exec(ctx, `
		INSERT INTO devices (`+deviceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.Name, d.MerchantID, d.Region, string(d.Status), d.Battery, d.LastTxn, d.Model, d.Firmware)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDeviceDuplicateKey
		}
		return fmt.Errorf("falha ao inserir dispositivo: %w", err)
	}
	return nil
}

// Upsert implementa device.Repository.Upsert
func (r *PostgresDeviceRepository) Upsert(ctx context.Context, d *device.Device) error {
	return upsertDevice(ctx, r.db.Pool(), d)
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func upsertDevice(ctx context.Context, q execer, d *device.Device) error {
	_, err := q.Exec(ctx, `
		INSERT INTO devices (`+deviceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, merchant_id = EXCLUDED.merchant_id, region = EXCLUDED.region,
			status = EXCLUDED.status, battery = EXCLUDED.battery, last_txn = EXCLUDED.last_txn,
			model = EXCLUDED.model, firmware = EXCLUDED.firmware`,
		d.ID, d.Name, d.MerchantID, d.Region, string(d.Status), d.Battery, d.LastTxn, d.Model, d.Firmware)
	if err != nil {
		return fmt.Errorf("falha ao gravar dispositivo: %w", err)
	}
	return nil
}

// UpdateField implementa device.Repository.UpdateField.
// A linha é travada, alterada em memória com device.Apply e regravada.
func (r *PostgresDeviceRepository) UpdateField(ctx context.Context, id string, field device.Field, value interface{}) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, "SELECT "+deviceColumns+" FROM devices WHERE id = $1 FOR UPDATE", device.NormalizeID(id))
		d, err := scanDevice(row)
		if err != nil {
			return err
		}
		if err := d.Apply(field, value); err != nil {
			return err
		}
		return upsertDevice(ctx, tx, d)
	})
}
