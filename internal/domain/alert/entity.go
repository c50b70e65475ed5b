package alert

import (
	"context"
)

// Severity é a gravidade do alerta
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Alert é um aviso operacional ativo sobre um terminal
type Alert struct {
	ID       string   `json:"id" yaml:"id"`
	Type     string   `json:"type" yaml:"type"`
	DeviceID string   `json:"device_id" yaml:"device_id"`
	Merchant string   `json:"merchant" yaml:"merchant"`
	Time     string   `json:"time" yaml:"time"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// Repository define a interface para operações de repositório de alertas
type Repository interface {
	// List lista os alertas ativos na ordem de abertura
	List(ctx context.Context) ([]*Alert, error)

	// FindByID busca um alerta ativo
	FindByID(ctx context.Context, id string) (*Alert, error)

	// Create abre um alerta. ID repetido retorna domain.ErrConflict
	Create(ctx context.Context, a *Alert) error

	// Delete encerra um alerta. Alerta ausente retorna domain.ErrNotFound
	Delete(ctx context.Context, id string) error
}
