package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/skate-scout/internal/config"
	"github.com/skate-scout/internal/delivery/http/handler"
	"github.com/skate-scout/internal/delivery/http/middleware"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	routeHandler  *handler.RouteHandler
	reportHandler *handler.ReportHandler
	healthHandler *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	routeHandler *handler.RouteHandler,
	reportHandler *handler.ReportHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Skate Scout",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // waypoint fan-out + elevation
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		routeHandler:  routeHandler,
		reportHandler: reportHandler,
		healthHandler: healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger, "/api/health"))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api")

	api.Get("/health", s.healthHandler.Health)

	// Routes - дорогой запрос к провайдеру, ограничиваем по IP
	api.Post("/routes", middleware.RateLimiter(s.config.Server.RateLimitMax), s.routeHandler.FindRoutes)

	// Reports
	api.Get("/reports", s.reportHandler.ListReports)
	api.Post("/reports", s.reportHandler.CreateReport)
	api.Delete("/reports/:id", s.reportHandler.DeleteReport)

	// Front-end
	if dir := s.config.Server.StaticDir; dir != "" {
		s.app.Static("/", dir, fiber.Static{
			Compress: true,
			Index:    "index.html",
		})
	}
}

// App - доступ к fiber.App для тестов
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки fiber (404 маршрута, 405, паники после recover) в формате AppError
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
			switch {
			case code == fiber.StatusNotFound:
				errCode = "NOT_FOUND"
			case code < fiber.StatusInternalServerError:
				errCode = "INVALID_REQUEST"
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", fiberutils.CopyString(c.Path())),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": message,
			},
		})
	}
}
