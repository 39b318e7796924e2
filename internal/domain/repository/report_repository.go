package repository

import (
	"context"
	"time"

	"github.com/skate-scout/internal/domain"
)

// ReportRepository - процессное хранилище отчётов. Реализации потокобезопасны.
type ReportRepository interface {
	// Create добавляет отчёт в конец списка
	Create(ctx context.Context, report *domain.Report) error

	// List возвращает снимок всех отчётов в порядке добавления
	List(ctx context.Context) ([]domain.Report, error)

	// Delete удаляет первый отчёт с данным id; false - если не найден
	Delete(ctx context.Context, id string) (bool, error)

	// Count возвращает текущее количество отчётов
	Count(ctx context.Context) (int, error)

	// DeleteOlderThan удаляет отчёты, созданные раньше cutoff
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
