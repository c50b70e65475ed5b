package repository

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/activity"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/alert"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/device"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/faq"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/merchant"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/report"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/tenant"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
)

//go:embed seed/seed.yaml
var defaultSeed []byte

// Seed é o conjunto de dados de demonstração carregado na inicialização
type Seed struct {
	Users        []*user.User
	Devices      []*device.Device
	Merchants    []*merchant.Merchant
	Regions      []report.RegionSummary
	Transactions []report.Transaction
	Alerts       []*alert.Alert
	FAQ          []*faq.Entry
	Activity     []*activity.Entry
	Tenants      []*tenant.Tenant
}

type seedUser struct {
	ID       string `yaml:"id"`
	Username string `yaml:"username"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	TenantID string `yaml:"tenant_id"`
	Password string `yaml:"password"`
}

type seedTransaction struct {
	ID        string  `yaml:"id"`
	DeviceID  string  `yaml:"device_id"`
	Type      string  `yaml:"type"`
	Amount    float64 `yaml:"amount"`
	Status    string  `yaml:"status"`
	Timestamp string  `yaml:"timestamp"`
}

type seedActivity struct {
	User      string `yaml:"user"`
	Action    string `yaml:"action"`
	Timestamp string `yaml:"timestamp"`
	IP        string `yaml:"ip"`
}

type seedFile struct {
	Users        []seedUser             `yaml:"users"`
	Devices      []*device.Device       `yaml:"devices"`
	Merchants    []*merchant.Merchant   `yaml:"merchants"`
	Regions      []report.RegionSummary `yaml:"regions"`
	Transactions []seedTransaction      `yaml:"transactions"`
	Alerts       []*alert.Alert         `yaml:"alerts"`
	FAQ          []*faq.Entry           `yaml:"faq"`
	Activity     []seedActivity         `yaml:"activity"`
	Tenants      []*tenant.Tenant       `yaml:"tenants"`
}

// LoadSeed interpreta um arquivo de seed YAML. As senhas são convertidas em hash bcrypt.
func LoadSeed(data []byte) (*Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("erro ao ler seed: %w", err)
	}

	s := &Seed{
		Devices:   f.Devices,
		Merchants: f.Merchants,
		Regions:   f.Regions,
		Alerts:    f.Alerts,
		FAQ:       f.FAQ,
		Tenants:   f.Tenants,
	}

	for _, su := range f.Users {
		role, err := user.ParseRole(su.Role)
		if err != nil {
			return nil, fmt.Errorf("usuário %s: %w", su.Username, err)
		}
		u := &user.User{
			ID:       su.ID,
			TenantID: su.TenantID,
			Username: su.Username,
			Name:     su.Name,
			Role:     role,
			Status:   user.StatusActive,
		}
		if err := u.SetPassword(su.Password); err != nil {
			return nil, fmt.Errorf("usuário %s: %w", su.Username, err)
		}
		s.Users = append(s.Users, u)
	}

	for _, st := range f.Transactions {
		ts, err := time.Parse(time.RFC3339, st.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("transação %s: %w", st.ID, err)
		}
		s.Transactions = append(s.Transactions, report.Transaction{
			ID:        st.ID,
			DeviceID:  st.DeviceID,
			Type:      st.Type,
			Amount:    st.Amount,
			Status:    st.Status,
			Timestamp: ts,
		})
	}

	for _, sa := range f.Activity {
		ts, err := time.Parse(time.RFC3339, sa.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("atividade de %s: %w", sa.User, err)
		}
		s.Activity = append(s.Activity, &activity.Entry{
			User:      sa.User,
			Action:    sa.Action,
			Timestamp: ts,
			IP:        sa.IP,
		})
	}

	return s, nil
}

// DefaultSeed carrega o seed embutido no binário
func DefaultSeed() (*Seed, error) {
	return LoadSeed(defaultSeed)
}
