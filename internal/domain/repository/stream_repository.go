package repository

import (
	"context"

	"github.com/skate-scout/internal/domain"
)

// ReportEventPublisher - публикация изменений набора отчётов во внешний стрим
type ReportEventPublisher interface {
	Publish(ctx context.Context, event domain.ReportEvent) error
}
