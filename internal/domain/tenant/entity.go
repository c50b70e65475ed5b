package tenant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
)

var (
	ErrEmptyID       = errors.New("id não pode ser vazio")
	ErrInvalidStatus = errors.New("status de tenant inválido")
)

// Status representa o estado do tenant
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// ParseStatus valida o status informado
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusSuspended:
		return StatusSuspended, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Tenant representa uma operadora da plataforma
type Tenant struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Region          string `json:"region" yaml:"region"`
	ActiveMerchants int    `json:"active_merchants" yaml:"active_merchants"`
	ActiveDevices   int    `json:"active_devices" yaml:"active_devices"`
	Status          Status `json:"status" yaml:"status"`
}

// IsActive verifica se o tenant está ativo
func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}

// Activate ativa o tenant
func (t *Tenant) Activate() {
	t.Status = StatusActive
}

// Suspend suspende o tenant
func (t *Tenant) Suspend() {
	t.Status = StatusSuspended
}

// Patch descreve uma alteração parcial. Campos vazios são mantidos.
type Patch struct {
	Region string
	Status string
}

// Apply aplica a alteração validando o status
func (t *Tenant) Apply(p Patch) error {
	if p.Status != "" {
		st, err := ParseStatus(p.Status)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidField, err)
		}
		t.Status = st
	}
	if r := strings.TrimSpace(p.Region); r != "" {
		t.Region = r
	}
	return nil
}
