package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/skate-scout/internal/worker"
)

// Expirer удаляет отчёты старше ttl
type Expirer interface {
	Expire(ctx context.Context, ttl time.Duration) (int, error)
}

// SweeperWorker - периодическое удаление просроченных отчётов по cron-расписанию
type SweeperWorker struct {
	*worker.BaseWorker
	expirer  Expirer
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
}

// NewSweeperWorker - schedule в стандартном формате cron или дескриптор (@every 1m, @hourly)
func NewSweeperWorker(expirer Expirer, ttl time.Duration, schedule string, logger *zap.Logger) (*SweeperWorker, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("report TTL must be positive, got %v", ttl)
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}

	return &SweeperWorker{
		BaseWorker: worker.NewBaseWorker("report-sweeper", logger),
		expirer:    expirer,
		ttl:        ttl,
		schedule:   schedule,
		cron:       cron.New(),
	}, nil
}

// Start выполняет первый проход сразу и блокируется до отмены ctx или Stop
func (w *SweeperWorker) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.schedule, func() { w.Sweep(ctx) }); err != nil {
		return fmt.Errorf("error scheduling sweep: %w", err)
	}

	w.cron.Start()
	w.Logger().Info("Report sweeper started",
		zap.String("schedule", w.schedule),
		zap.Duration("ttl", w.ttl))

	w.Sweep(ctx)

	select {
	case <-ctx.Done():
	case <-w.StopChan():
	}

	// ждём завершения текущего прохода
	<-w.cron.Stop().Done()
	w.Logger().Info("Report sweeper stopped")
	return nil
}

// Sweep - один проход удаления
func (w *SweeperWorker) Sweep(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}

	removed, err := w.expirer.Expire(ctx, w.ttl)
	if err != nil {
		w.Logger().Error("Report sweep failed", zap.Error(err))
		return 0
	}

	w.Logger().Debug("Report sweep finished", zap.Int("removed", removed))
	return removed
}
