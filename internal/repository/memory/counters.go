package memory

import (
	"context"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// CounterRepository implements repository.CounterRepository.
type CounterRepository struct {
	s *Store
}

func (r *CounterRepository) Next(_ context.Context, name string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.counters[name]++
	return r.s.counters[name], nil
}

// ReportRepository implements repository.ReportRepository.
type ReportRepository struct {
	s *Store
}

func (r *ReportRepository) SaveDailyReport(_ context.Context, report models.DailyReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.reports = append(r.s.reports, report)
	return nil
}
