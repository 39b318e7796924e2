package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/skate-scout/internal/pkg/utils"
	"github.com/skate-scout/internal/usecase"
	"github.com/skate-scout/internal/usecase/dto"
)

// HealthHandler обрабатывает health-check
type HealthHandler struct {
	reportUC *usecase.ReportUseCase
	logger   *zap.Logger
}

func NewHealthHandler(reportUC *usecase.ReportUseCase, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		reportUC: reportUC,
		logger:   logger,
	}
}

// Health godoc
// @Summary Health check
// @Description Статус сервиса и количество отчётов в хранилище
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	count, err := h.reportUC.Count(c.Context())
	if err != nil {
		h.logger.Error("Health check failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Reports: count,
		Time:    time.Now().UTC(),
	})
}
