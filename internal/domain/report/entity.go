package report

import (
	"context"
	"time"
)

// RegionSummary agrega as transações do dia de uma região
type RegionSummary struct {
	Region  string `json:"region" yaml:"region"`
	Count   int    `json:"count" yaml:"count"`
	Volume  int64  `json:"volume" yaml:"volume"`
	Average int64  `json:"average" yaml:"average"`
}

// Totals soma os agregados de várias regiões
type Totals struct {
	Count   int
	Volume  int64
	Average int64
}

// Sum calcula o total geral e o ticket médio
func Sum(summaries []RegionSummary) Totals {
	var t Totals
	for _, s := range summaries {
		t.Count += s.Count
		t.Volume += s.Volume
	}
	if t.Count > 0 {
		t.Average = t.Volume / int64(t.Count)
	}
	return t
}

// Transaction é uma transação individual de um terminal
type Transaction struct {
	ID        string    `json:"id" yaml:"id"`
	DeviceID  string    `json:"device_id" yaml:"device_id"`
	Type      string    `json:"type" yaml:"type"`
	Amount    float64   `json:"amount" yaml:"amount"`
	Status    string    `json:"status" yaml:"status"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// TransactionFilter restringe a consulta de transações
type TransactionFilter struct {
	DeviceID string
	Limit    int
}

// Repository define a interface de leitura dos dados de movimento
type Repository interface {
	// RegionSummaries retorna os agregados do dia na ordem das regiões
	RegionSummaries(ctx context.Context) ([]RegionSummary, error)

	// RegionSummary retorna o agregado de uma região
	RegionSummary(ctx context.Context, region string) (*RegionSummary, error)

	// Transactions lista as transações mais recentes primeiro
	Transactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
}
