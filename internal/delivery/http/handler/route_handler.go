package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/skate-scout/internal/pkg/errors"
	"github.com/skate-scout/internal/pkg/utils"
	"github.com/skate-scout/internal/pkg/validator"
	"github.com/skate-scout/internal/usecase"
	"github.com/skate-scout/internal/usecase/dto"
)

// RouteHandler - обработчик поиска маршрутов
type RouteHandler struct {
	routeUC *usecase.RouteUseCase
	logger  *zap.Logger
}

// NewRouteHandler - создание нового RouteHandler
func NewRouteHandler(routeUC *usecase.RouteUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeUC: routeUC,
		logger:  logger,
	}
}

// FindRoutes godoc
// @Summary Лучшие маршруты для скейта
// @Description Собирает альтернативы провайдера и маршруты через промежуточные точки, считает метрики (повороты, неровность, гладкость, загруженность, перепад высот, калории) и выбирает лучший маршрут по каждому критерию. Отчёты из тела запроса учитываются только в этом запросе.
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.RouteRequest true "Начало и конец маршрута: адрес или {lat, lng}"
// @Success 200 {object} domain.OptimalPaths
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/routes [post]
func (h *RouteHandler) FindRoutes(c *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Invalid route request body", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": err.Error(),
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.routeUC.FindRoutes(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, result)
}
