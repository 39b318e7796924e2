package main

// @title Skate Scout API
// @version 1.0.0
// @description Подбор маршрутов для скейта и самоката по кампусу. Берёт альтернативы провайдера карт, добавляет маршруты через промежуточные точки, считает метрики качества (повороты, неровность, гладкость покрытия по отчётам, загруженность, перепад высот, калории) и выбирает лучший маршрут по каждому критерию.
// @description
// @description Основные возможности:
// @description - Лучшие маршруты: самый быстрый, с наименьшим числом поворотов, самый гладкий, сбалансированный, с одним поворотом
// @description - Пользовательские отчёты о покрытии, загруженности и перекрытиях

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/skate-scout/docs/swagger"
	"github.com/skate-scout/internal/config"
	httpDelivery "github.com/skate-scout/internal/delivery/http"
	"github.com/skate-scout/internal/delivery/http/handler"
	"github.com/skate-scout/internal/domain"
	"github.com/skate-scout/internal/domain/repository"
	"github.com/skate-scout/internal/infrastructure/googlemaps"
	"github.com/skate-scout/internal/infrastructure/mapbox"
	"github.com/skate-scout/internal/pkg/logger"
	"github.com/skate-scout/internal/repository/cache"
	"github.com/skate-scout/internal/repository/memory"
	redisRepo "github.com/skate-scout/internal/repository/redis"
	"github.com/skate-scout/internal/routing"
	"github.com/skate-scout/internal/usecase"
	"github.com/skate-scout/internal/worker"
	"github.com/skate-scout/internal/worker/reports"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Skate Scout")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("maps_provider", cfg.Maps.Provider),
		zap.String("report_store", cfg.Reports.Store),
		zap.Bool("redis", cfg.Redis.Enabled),
	)

	if cfg.Maps.APIKey == "" {
		log.Warn("MAPS_API_KEY is empty, provider requests will be denied")
	}

	// 3. Connect to Redis (optional)
	var redisClient *cache.Redis
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Health(ctx); err != nil {
			cancel()
			log.Fatal("Redis health check failed", zap.Error(err))
		}
		cancel()
	}

	// 4. Initialize Repositories
	var mapsRepo repository.MapsRepository
	switch cfg.Maps.Provider {
	case "mapbox":
		mapsRepo = mapbox.NewMapboxClient(&cfg.Maps, log)
	default:
		mapsRepo = googlemaps.NewClient(&cfg.Maps, log)
	}
	var reportRepo repository.ReportRepository
	var events repository.ReportEventPublisher

	if redisClient != nil {
		cacheRepo := cache.NewCacheRepository(redisClient)
		mapsRepo = googlemaps.NewCachedClient(mapsRepo, cacheRepo, cfg.Cache.ProviderCacheTTL, log)
		events = redisRepo.NewReportEventPublisher(redisClient.Client(), cfg.Redis.KeyPrefix+domain.StreamReportEvents, log)
	} else {
		events = redisRepo.NewNoopPublisher()
	}

	switch cfg.Reports.Store {
	case "redis":
		reportRepo = redisRepo.NewReportRepository(redisClient.Client(), cfg.Redis.KeyPrefix, log)
	default:
		reportRepo = memory.NewReportRepository()
	}

	log.Info("Repositories initialized")

	// 5. Initialize Use Cases
	routeUC := usecase.NewRouteUseCase(
		mapsRepo,
		reportRepo,
		routing.NewSeededJitter(cfg.Routing.RoughnessSeed),
		cfg.Provider,
		log,
	)
	reportUC := usecase.NewReportUseCase(reportRepo, events, log)

	log.Info("Use cases initialized")

	// 6. Workers
	workerManager := worker.NewWorkerManager(log)
	if cfg.Reports.TTL > 0 && !cfg.Reports.ExternalSweeper {
		sweeper, err := reports.NewSweeperWorker(reportUC, cfg.Reports.TTL, cfg.Reports.SweepSchedule, log)
		if err != nil {
			log.Fatal("Failed to create report sweeper", zap.Error(err))
		}
		workerManager.Register(sweeper)
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if workerManager.Len() > 0 {
		if err := workerManager.Start(workerCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewRouteHandler(routeUC, log),
		handler.NewReportHandler(reportUC, log),
		handler.NewHealthHandler(reportUC, log),
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	cancelWorkers()
	if workerManager.Len() > 0 {
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
