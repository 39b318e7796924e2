package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skate-scout/internal/config"
	"github.com/skate-scout/internal/domain"
	"github.com/skate-scout/internal/domain/repository"
	"github.com/skate-scout/internal/pkg/errors"
	"github.com/skate-scout/internal/pkg/geo"
	"github.com/skate-scout/internal/routing"
	"github.com/skate-scout/internal/usecase/dto"
)

// RouteUseCase - сбор кандидатов у провайдера, обогащение метриками и выбор лучших
type RouteUseCase struct {
	mapsRepo   repository.MapsRepository
	reportRepo repository.ReportRepository
	jitter     routing.JitterSource
	provider   config.ProviderConfig
	logger     *zap.Logger
}

func NewRouteUseCase(
	mapsRepo repository.MapsRepository,
	reportRepo repository.ReportRepository,
	jitter routing.JitterSource,
	provider config.ProviderConfig,
	logger *zap.Logger,
) *RouteUseCase {
	if provider.MaxParallel <= 0 {
		provider.MaxParallel = 1
	}
	return &RouteUseCase{
		mapsRepo:   mapsRepo,
		reportRepo: reportRepo,
		jitter:     jitter,
		provider:   provider,
		logger:     logger,
	}
}

// FindRoutes - полный цикл POST /api/routes
func (uc *RouteUseCase) FindRoutes(ctx context.Context, req dto.RouteRequest) (*domain.OptimalPaths, error) {
	if req.Start.IsZero() || req.End.IsZero() {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"fields": []string{"start:required", "end:required"},
		})
	}

	if err := validateEndpoints(req.Start.Location, req.End.Location); err != nil {
		return nil, err
	}

	routes, err := uc.CollectCandidates(ctx, req.Start.Location, req.End.Location)
	if err != nil {
		return nil, err
	}

	reports, err := uc.reportSnapshot(ctx, req.Reports)
	if err != nil {
		return nil, err
	}

	uc.Enrich(ctx, routes, reports)

	result := routing.SelectOptimal(routes)

	uc.logger.Info("Routes computed",
		zap.Int("candidates", len(routes)),
		zap.Int("reports", len(reports)),
		zap.Bool("single_turn", result.SingleTurnPath != nil))

	return result, nil
}

// validateEndpoints - координаты вне диапазона не отправляются провайдеру
func validateEndpoints(start, end domain.Location) error {
	var invalid []string
	if start.Coordinate != nil && !start.Coordinate.Valid() {
		invalid = append(invalid, "start")
	}
	if end.Coordinate != nil && !end.Coordinate.Valid() {
		invalid = append(invalid, "end")
	}
	if len(invalid) > 0 {
		return errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"fields": invalid,
		})
	}
	return nil
}

// CollectCandidates запрашивает альтернативы провайдера и маршруты через
// сгенерированные waypoints. Регулярные идут первыми, затем waypoint-маршруты
// в порядке генерации. Без дедупликации.
func (uc *RouteUseCase) CollectCandidates(ctx context.Context, start, end domain.Location) ([]*domain.Route, error) {
	g, gctx := errgroup.WithContext(ctx)

	var regular []*domain.Route
	g.Go(func() error {
		routes, err := uc.mapsRepo.Directions(gctx, domain.DirectionsQuery{
			Origin:       start,
			Destination:  end,
			Alternatives: true,
		})
		if err != nil {
			uc.logger.Error("Directions request failed", zap.Error(err))
			return errors.ErrProviderFailure.Wrap(err)
		}
		regular = routes
		return nil
	})

	var viaWaypoints []*domain.Route
	g.Go(func() error {
		startCoord, err := uc.resolve(gctx, start)
		if err != nil {
			return err
		}
		endCoord, err := uc.resolve(gctx, end)
		if err != nil {
			return err
		}
		viaWaypoints = uc.waypointRoutes(gctx, start, end, routing.GenerateWaypoints(startCoord, endCoord))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	routes := make([]*domain.Route, 0, len(regular)+len(viaWaypoints))
	routes = append(routes, regular...)
	routes = append(routes, viaWaypoints...)

	if len(routes) == 0 {
		return nil, errors.ErrNoRoutesFound
	}
	return routes, nil
}

func (uc *RouteUseCase) resolve(ctx context.Context, loc domain.Location) (domain.Coordinate, error) {
	if loc.Coordinate != nil {
		return *loc.Coordinate, nil
	}

	coord, err := uc.mapsRepo.Geocode(ctx, loc.Address)
	if err != nil {
		uc.logger.Error("Geocoding failed", zap.String("address", loc.Address), zap.Error(err))
		return domain.Coordinate{}, errors.ErrProviderFailure.Wrap(err)
	}
	return coord, nil
}

// waypointRoutes - по одному запросу на waypoint; сбой отбрасывает только этот кандидат
func (uc *RouteUseCase) waypointRoutes(ctx context.Context, start, end domain.Location, waypoints []routing.Waypoint) []*domain.Route {
	slots := make([]*domain.Route, len(waypoints))

	var g errgroup.Group
	g.SetLimit(uc.provider.MaxParallel)

	for i, wp := range waypoints {
		i, wp := i, wp
		g.Go(func() error {
			callCtx, cancel := uc.withTimeout(ctx, uc.provider.WaypointTimeout)
			defer cancel()

			point := wp.Coordinate
			routes, err := uc.mapsRepo.Directions(callCtx, domain.DirectionsQuery{
				Origin:      start,
				Destination: end,
				Waypoint:    &point,
			})
			if err != nil || len(routes) == 0 {
				uc.logger.Warn("Waypoint route unavailable",
					zap.String("kind", string(wp.Kind)),
					zap.String("name", wp.Name),
					zap.Float64("lat", point.Lat),
					zap.Float64("lng", point.Lng),
					zap.Error(err))
				return nil
			}

			route := routes[0]
			route.Type = domain.RouteTypeWaypoint
			route.Index = -(i + 1)
			route.Waypoint = &point
			slots[i] = route
			return nil
		})
	}
	_ = g.Wait()

	out := make([]*domain.Route, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// reportSnapshot - отчёты хранилища плюс отчёты из тела запроса (только на этот запрос)
func (uc *RouteUseCase) reportSnapshot(ctx context.Context, extra []dto.CreateReportRequest) ([]domain.Report, error) {
	stored, err := uc.reportRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to read reports", zap.Error(err))
		return nil, errors.ErrStoreError.Wrap(err)
	}
	if len(extra) == 0 {
		return stored, nil
	}

	now := time.Now().UTC()
	reports := make([]domain.Report, 0, len(stored)+len(extra))
	reports = append(reports, stored...)
	for _, r := range extra {
		reports = append(reports, r.ToReport(uuid.New().String(), now))
	}
	return reports, nil
}

type enrichment struct {
	matched   []domain.Report
	elevation domain.ElevationProfile
}

// Enrich заполняет производные метрики каждого маршрута. Сетевые части
// (высоты) выполняются параллельно, сами метрики считаются по порядку,
// чтобы последовательность jitter не зависела от планировщика.
func (uc *RouteUseCase) Enrich(ctx context.Context, routes []*domain.Route, reports []domain.Report) {
	index := routing.NewReportIndex(reports)
	results := make([]enrichment, len(routes))

	uc.logger.Debug("Enriching routes",
		zap.Int("routes", len(routes)),
		zap.Int("indexed_reports", index.Len()))

	var g errgroup.Group
	g.SetLimit(uc.provider.MaxParallel)

	for i, route := range routes {
		i, route := i, route
		g.Go(func() error {
			points := geo.DecodePolyline(route.Polyline)
			results[i] = enrichment{
				matched:   index.Match(points),
				elevation: uc.elevationProfile(ctx, points),
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, route := range routes {
		routing.ApplyMetrics(route, results[i].matched, results[i].elevation, uc.jitter)
	}
}

// elevationProfile - сбой провайдера даёт профиль unavailable, а не ошибку
func (uc *RouteUseCase) elevationProfile(ctx context.Context, points []geo.Coordinate) domain.ElevationProfile {
	start, end, ok := routing.Endpoints(points)
	if !ok {
		return domain.UnknownElevation()
	}

	callCtx, cancel := uc.withTimeout(ctx, uc.provider.ElevationTimeout)
	defer cancel()

	startElevation, err := uc.mapsRepo.Elevation(callCtx, start)
	if err != nil {
		uc.logger.Warn("Elevation unavailable", zap.String("point", "start"), zap.Error(err))
		return domain.UnknownElevation()
	}
	endElevation, err := uc.mapsRepo.Elevation(callCtx, end)
	if err != nil {
		uc.logger.Warn("Elevation unavailable", zap.String("point", "end"), zap.Error(err))
		return domain.UnknownElevation()
	}

	return routing.ClassifyElevation(startElevation, endElevation)
}

func (uc *RouteUseCase) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
