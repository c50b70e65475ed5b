package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/nexpos-assistant/internal/infrastructure/database"
)

// SeedPostgres grava os dados de demonstração. Linhas já existentes são mantidas.
func SeedPostgres(ctx context.Context, db *database.PostgresDB, seed *Seed) error {
	return db.Transaction(ctx, func(tx pgx.Tx) error {
		for _, m := range seed.Merchants {
			if _, err := tx.Exec(ctx, `INSERT INTO merchants (`+merchantColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT (id) DO NOTHING`,
				m.ID, m.Name, m.Category, m.Region, m.Contact, m.Phone, m.Address, m.Devices, string(m.Status), m.Onboarded); err != nil {
				return fmt.Errorf("seed de estabelecimento %s: %w", m.ID, err)
			}
		}
		for _, d := range seed.Devices {
			if _, err := tx.Exec(ctx, `INSERT INTO devices (`+deviceColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO NOTHING`,
				d.ID, d.Name, d.MerchantID, d.Region, string(d.Status), d.Battery, d.LastTxn, d.Model, d.Firmware); err != nil {
				return fmt.Errorf("seed de dispositivo %s: %w", d.ID, err)
			}
		}
		for _, a := range seed.Alerts {
			if _, err := tx.Exec(ctx, `INSERT INTO alerts (`+alertColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`,
				a.ID, a.Type, a.DeviceID, a.Merchant, a.Time, string(a.Severity)); err != nil {
				return fmt.Errorf("seed de alerta %s: %w", a.ID, err)
			}
		}
		for _, t := range seed.Tenants {
			if _, err := tx.Exec(ctx, `INSERT INTO tenants (`+tenantColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`,
				t.ID, t.Name, t.Region, t.ActiveMerchants, t.ActiveDevices, string(t.Status)); err != nil {
				return fmt.Errorf("seed de tenant %s: %w", t.ID, err)
			}
		}
		for _, u := range seed.Users {
			if _, err := tx.Exec(ctx, `INSERT INTO users (`+userColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (id) DO NOTHING`,
				u.ID, u.TenantID, u.Username, u.Name, u.Password, u.Role.String(), string(u.Status)); err != nil {
				return fmt.Errorf("seed de usuário %s: %w", u.ID, err)
			}
		}
		return nil
	})
}
