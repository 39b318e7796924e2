package worker

import (
	"context"
)

// Worker - фоновая задача процесса (например, очистка просроченных отчётов)
type Worker interface {
	// Start блокируется, пока не отменён ctx или не вызван Stop
	Start(ctx context.Context) error

	// Stop сигнализирует о завершении; повторный вызов безопасен
	Stop() error

	Name() string
}
