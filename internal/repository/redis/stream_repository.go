package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/skate-scout/internal/domain"
	"github.com/skate-scout/internal/domain/repository"
)

// streamMaxLen - приблизительный предел длины стрима (XADD MAXLEN ~)
const streamMaxLen = 10000

type streamPublisher struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

// NewReportEventPublisher создает публикатор событий отчётов в Redis Stream
func NewReportEventPublisher(client *redis.Client, stream string, logger *zap.Logger) repository.ReportEventPublisher {
	return &streamPublisher{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// Publish сериализует событие в поле "data" записи стрима
func (p *streamPublisher) Publish(ctx context.Context, event domain.ReportEvent) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event",
			zap.String("stream", p.stream),
			zap.Error(err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}).Result()
	if err != nil {
		p.logger.Error("Failed to publish to stream",
			zap.String("stream", p.stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	p.logger.Debug("Event published to stream",
		zap.String("stream", p.stream),
		zap.String("action", string(event.Action)),
		zap.String("message_id", id))
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher - публикатор для режима без Redis
func NewNoopPublisher() repository.ReportEventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, domain.ReportEvent) error { return nil }
