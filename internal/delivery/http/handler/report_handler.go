package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/skate-scout/internal/pkg/errors"
	"github.com/skate-scout/internal/pkg/utils"
	"github.com/skate-scout/internal/pkg/validator"
	"github.com/skate-scout/internal/usecase"
	"github.com/skate-scout/internal/usecase/dto"
)

// ReportHandler - обработчик пользовательских отчётов
type ReportHandler struct {
	reportUC *usecase.ReportUseCase
	logger   *zap.Logger
}

// NewReportHandler - создание нового ReportHandler
func NewReportHandler(reportUC *usecase.ReportUseCase, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportUC: reportUC,
		logger:   logger,
	}
}

// CreateReport godoc
// @Summary Добавить отчёт
// @Description Сохраняет отчёт о покрытии, загруженности или перекрытии в точке. id и время создания задаёт сервер.
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body dto.CreateReportRequest true "Отчёт"
// @Success 201 {object} utils.SuccessResponse{report=domain.Report}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/reports [post]
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": err.Error(),
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	report, err := h.reportUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.StatusCreated, report)
}

// ListReports godoc
// @Summary Список отчётов
// @Description Все отчёты в порядке добавления
// @Tags Reports
// @Produce json
// @Success 200 {array} domain.Report
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/reports [get]
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	reports, err := h.reportUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, reports)
}

// DeleteReport godoc
// @Summary Удалить отчёт
// @Tags Reports
// @Produce json
// @Param id path string true "ID отчёта"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/reports/{id} [delete]
func (h *ReportHandler) DeleteReport(c *fiber.Ctx) error {
	id := strings.TrimSpace(fiberutils.CopyString(c.Params("id")))
	if id == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.reportUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, nil)
}
