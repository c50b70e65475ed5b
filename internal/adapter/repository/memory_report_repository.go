package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/report"
)

// MemoryReportRepository implementa report.Repository sobre dados fixos do dia
type MemoryReportRepository struct {
	regions      []report.RegionSummary
	transactions []report.Transaction
}

// NewMemoryReportRepository cria o repositório. As transações são ordenadas da mais recente para a mais antiga.
func NewMemoryReportRepository(regions []report.RegionSummary, transactions []report.Transaction) *MemoryReportRepository {
	txns := append([]report.Transaction(nil), transactions...)
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Timestamp.After(txns[j].Timestamp)
	})
	return &MemoryReportRepository{
		regions:      append([]report.RegionSummary(nil), regions...),
		transactions: txns,
	}
}

// RegionSummaries implementa report.Repository.RegionSummaries
func (r *MemoryReportRepository) RegionSummaries(ctx context.Context) ([]report.RegionSummary, error) {
	return append([]report.RegionSummary(nil), r.regions...), nil
}

// RegionSummary implementa report.Repository.RegionSummary
func (r *MemoryReportRepository) RegionSummary(ctx context.Context, region string) (*report.RegionSummary, error) {
	for _, s := range r.regions {
		if strings.EqualFold(s.Region, region) {
			c := s
			return &c, nil
		}
	}
	return nil, ErrRegionNotFound
}

// Transactions implementa report.Repository.Transactions
func (r *MemoryReportRepository) Transactions(ctx context.Context, filter report.TransactionFilter) ([]report.Transaction, error) {
	out := make([]report.Transaction, 0, len(r.transactions))
	for _, t := range r.transactions {
		if filter.DeviceID != "" && !strings.EqualFold(filter.DeviceID, t.DeviceID) {
			continue
		}
		out = append(out, t)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
