package activity

import (
	"context"
	"time"
)

// Entry registra uma ação de um usuário
type Entry struct {
	User        string    `json:"user" yaml:"user"`
	Action      string    `json:"action" yaml:"action"`
	Target      string    `json:"target,omitempty" yaml:"target"`
	OperationID string    `json:"operation_id,omitempty" yaml:"operation_id"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	IP          string    `json:"ip,omitempty" yaml:"ip"`
}

// Repository define a interface do log de atividade
type Repository interface {
	// Record acrescenta uma entrada ao log
	Record(ctx context.Context, e *Entry) error

	// List retorna as entradas mais recentes primeiro, no máximo limit (0 = todas)
	List(ctx context.Context, limit int) ([]*Entry, error)
}
