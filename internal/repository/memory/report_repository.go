package memory

import (
	"context"
	"sync"
	"time"

	"github.com/skate-scout/internal/domain"
	"github.com/skate-scout/internal/domain/repository"
)

type reportRepository struct {
	mu      sync.RWMutex
	reports []domain.Report
}

// NewReportRepository - процессное хранилище отчётов, пустое при старте
func NewReportRepository() repository.ReportRepository {
	return &reportRepository{
		reports: make([]domain.Report, 0),
	}
}

func (r *reportRepository) Create(_ context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reports = append(r.reports, *report)
	return nil
}

// List возвращает копию, чтобы читатели не видели последующих изменений
func (r *reportRepository) List(_ context.Context) ([]domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Report, len(r.reports))
	copy(out, r.reports)
	return out, nil
}

func (r *reportRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reports {
		if r.reports[i].ID == id {
			r.reports = append(r.reports[:i], r.reports[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *reportRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.reports), nil
}

func (r *reportRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.reports[:0]
	removed := 0
	for _, rep := range r.reports {
		if rep.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, rep)
	}
	r.reports = kept
	return removed, nil
}
