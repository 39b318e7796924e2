package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skate-scout/internal/domain"
	"github.com/skate-scout/internal/domain/repository"
	"github.com/skate-scout/internal/pkg/errors"
	"github.com/skate-scout/internal/usecase/dto"
)

// ReportUseCase - жизненный цикл пользовательских отчётов
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	events     repository.ReportEventPublisher
	logger     *zap.Logger
	now        func() time.Time
}

func NewReportUseCase(
	reportRepo repository.ReportRepository,
	events repository.ReportEventPublisher,
	logger *zap.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo: reportRepo,
		events:     events,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create сохраняет отчёт с серверным id и временем создания
func (uc *ReportUseCase) Create(ctx context.Context, req dto.CreateReportRequest) (*domain.Report, error) {
	report := req.ToReport(uuid.New().String(), uc.now())

	if err := uc.reportRepo.Create(ctx, &report); err != nil {
		uc.logger.Error("Failed to store report", zap.Error(err))
		return nil, errors.ErrStoreError.Wrap(err)
	}

	uc.logger.Info("Report created",
		zap.String("id", report.ID),
		zap.String("type", string(report.Type)),
		zap.Float64("lat", report.Lat),
		zap.Float64("lng", report.Lng))

	uc.publish(ctx, domain.NewReportCreatedEvent(report, report.CreatedAt))
	return &report, nil
}

func (uc *ReportUseCase) List(ctx context.Context) ([]domain.Report, error) {
	reports, err := uc.reportRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list reports", zap.Error(err))
		return nil, errors.ErrStoreError.Wrap(err)
	}
	return reports, nil
}

func (uc *ReportUseCase) Delete(ctx context.Context, id string) error {
	found, err := uc.reportRepo.Delete(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to delete report", zap.String("id", id), zap.Error(err))
		return errors.ErrStoreError.Wrap(err)
	}
	if !found {
		return errors.ErrReportNotFound
	}

	uc.logger.Info("Report deleted", zap.String("id", id))
	uc.publish(ctx, domain.NewReportDeletedEvent(id, uc.now()))
	return nil
}

func (uc *ReportUseCase) Count(ctx context.Context) (int, error) {
	n, err := uc.reportRepo.Count(ctx)
	if err != nil {
		return 0, errors.ErrStoreError.Wrap(err)
	}
	return n, nil
}

// Expire удаляет отчёты старше ttl. ttl <= 0 - отчёты бессрочные
func (uc *ReportUseCase) Expire(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}

	now := uc.now()
	removed, err := uc.reportRepo.DeleteOlderThan(ctx, now.Add(-ttl))
	if err != nil {
		uc.logger.Error("Failed to expire reports", zap.Error(err))
		return 0, errors.ErrStoreError.Wrap(err)
	}

	if removed > 0 {
		uc.logger.Info("Expired reports removed", zap.Int("count", removed), zap.Duration("ttl", ttl))
		uc.publish(ctx, domain.NewReportsExpiredEvent(removed, now))
	}
	return removed, nil
}

// publish - best-effort: отчёт уже сохранён, сбой стрима только логируется
func (uc *ReportUseCase) publish(ctx context.Context, event domain.ReportEvent) {
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish report event",
			zap.String("action", string(event.Action)),
			zap.Error(err))
	}
}
