package repository

import (
	"github.com/hugohenrick/nexpos-assistant/internal/domain/activity"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/alert"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/device"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/faq"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/merchant"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/report"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/tenant"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
	"github.com/hugohenrick/nexpos-assistant/internal/infrastructure/database"
)

// Store agrupa os repositórios usados pelo assistente
type Store struct {
	Users     user.Repository
	Devices   device.Repository
	Merchants merchant.Repository
	Alerts    alert.Repository
	Reports   report.Repository
	FAQ       faq.Repository
	Activity  activity.Repository
	Tenants   tenant.Repository
}

// NewMemoryStore cria todos os repositórios em memória a partir do seed
func NewMemoryStore(seed *Seed) *Store {
	return &Store{
		Users:     NewMemoryUserRepository(seed.Users...),
		Devices:   NewMemoryDeviceRepository(seed.Devices...),
		Merchants: NewMemoryMerchantRepository(seed.Merchants...),
		Alerts:    NewMemoryAlertRepository(seed.Alerts...),
		Reports:   NewMemoryReportRepository(seed.Regions, seed.Transactions),
		FAQ:       NewMemoryFAQRepository(seed.FAQ...),
		Activity:  NewMemoryActivityRepository(seed.Activity...),
		Tenants:   NewMemoryTenantRepository(seed.Tenants...),
	}
}

// NewPostgresStore usa o PostgreSQL para as entidades alteráveis pelo diálogo.
// Relatórios e FAQ continuam vindo do seed.
func NewPostgresStore(db *database.PostgresDB, seed *Seed) *Store {
	return &Store{
		Users:     NewPostgresUserRepository(db),
		Devices:   NewPostgresDeviceRepository(db),
		Merchants: NewPostgresMerchantRepository(db),
		Alerts:    NewPostgresAlertRepository(db),
		Reports:   NewMemoryReportRepository(seed.Regions, seed.Transactions),
		FAQ:       NewMemoryFAQRepository(seed.FAQ...),
		Activity:  NewPostgresActivityRepository(db),
		Tenants:   NewPostgresTenantRepository(db),
	}
}
