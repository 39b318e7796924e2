package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/skate-scout/internal/domain"
	"github.com/skate-scout/internal/domain/repository"
)

// Отчёты хранятся в hash <prefix>reports (id -> JSON), порядок добавления
// задаёт sorted set <prefix>reports:order со score из счётчика <prefix>reports:seq.
type reportRepository struct {
	client   *redis.Client
	hashKey  string
	orderKey string
	seqKey   string
	logger   *zap.Logger
}

// NewReportRepository создает хранилище отчётов в Redis, общее для нескольких инстансов
func NewReportRepository(client *redis.Client, keyPrefix string, logger *zap.Logger) repository.ReportRepository {
	return &reportRepository{
		client:   client,
		hashKey:  keyPrefix + "reports",
		orderKey: keyPrefix + "reports:order",
		seqKey:   keyPrefix + "reports:seq",
		logger:   logger,
	}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	seq, err := r.client.Incr(ctx, r.seqKey).Result()
	if err != nil {
		r.logger.Error("Failed to allocate report sequence", zap.Error(err))
		return fmt.Errorf("failed to allocate report sequence: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.hashKey, report.ID, data)
		pipe.ZAdd(ctx, r.orderKey, redis.Z{Score: float64(seq), Member: report.ID})
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to store report",
			zap.String("id", report.ID),
			zap.Error(err))
		return fmt.Errorf("failed to store report: %w", err)
	}

	r.logger.Debug("Report stored", zap.String("id", report.ID), zap.Int64("seq", seq))
	return nil
}

func (r *reportRepository) List(ctx context.Context) ([]domain.Report, error) {
	ids, err := r.client.ZRange(ctx, r.orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read report order: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Report{}, nil
	}

	values, err := r.client.HMGet(ctx, r.hashKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read reports: %w", err)
	}

	reports := make([]domain.Report, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// удалён между ZRANGE и HMGET
			continue
		}
		var report domain.Report
		if err := json.Unmarshal([]byte(raw), &report); err != nil {
			r.logger.Warn("Skipping corrupted report",
				zap.String("id", ids[i]),
				zap.Error(err))
			continue
		}
		reports = append(reports, report)
	}

	return reports, nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) (bool, error) {
	var hdel *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		hdel = pipe.HDel(ctx, r.hashKey, id)
		pipe.ZRem(ctx, r.orderKey, id)
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to delete report", zap.String("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to delete report: %w", err)
	}

	return hdel.Val() > 0, nil
}

func (r *reportRepository) Count(ctx context.Context) (int, error) {
	n, err := r.client.HLen(ctx, r.hashKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return int(n), nil
}

func (r *reportRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	reports, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	expired := make([]string, 0)
	for _, rep := range reports {
		if rep.CreatedAt.Before(cutoff) {
			expired = append(expired, rep.ID)
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}

	members := make([]interface{}, len(expired))
	for i, id := range expired {
		members[i] = id
	}

	var hdel *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		hdel = pipe.HDel(ctx, r.hashKey, expired...)
		pipe.ZRem(ctx, r.orderKey, members...)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired reports: %w", err)
	}

	return int(hdel.Val()), nil
}
