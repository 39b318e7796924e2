package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/skate-scout/internal/config"
	"github.com/skate-scout/internal/domain"
	"github.com/skate-scout/internal/pkg/logger"
	"github.com/skate-scout/internal/repository/cache"
	redisRepo "github.com/skate-scout/internal/repository/redis"
	"github.com/skate-scout/internal/usecase"
	"github.com/skate-scout/internal/worker"
	"github.com/skate-scout/internal/worker/reports"
)

// Отдельный процесс очистки отчётов для REPORT_STORE=redis с несколькими
// инстансами API (REPORT_SWEEPER_EXTERNAL=true).
func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if cfg.Reports.Store != "redis" {
		fmt.Println("Report sweeper needs a shared store. Set REPORT_STORE=redis and REDIS_ENABLED=true.")
		os.Exit(0)
	}
	if cfg.Reports.TTL <= 0 {
		fmt.Println("Report expiry is disabled. Set REPORT_TTL (seconds) to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting report sweeper",
		zap.Duration("ttl", cfg.Reports.TTL),
		zap.String("schedule", cfg.Reports.SweepSchedule))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories and use cases
	reportRepo := redisRepo.NewReportRepository(redisClient.Client(), cfg.Redis.KeyPrefix, log)
	events := redisRepo.NewReportEventPublisher(redisClient.Client(), cfg.Redis.KeyPrefix+domain.StreamReportEvents, log)
	reportUC := usecase.NewReportUseCase(reportRepo, events, log)

	// 5. Initialize workers
	sweeper, err := reports.NewSweeperWorker(reportUC, cfg.Reports.TTL, cfg.Reports.SweepSchedule, log)
	if err != nil {
		log.Fatal("Failed to create report sweeper", zap.Error(err))
	}

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(sweeper)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
