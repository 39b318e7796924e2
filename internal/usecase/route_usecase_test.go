package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skate-scout/internal/config"
	"github.com/skate-scout/internal/domain"
	apperrors "github.com/skate-scout/internal/pkg/errors"
	"github.com/skate-scout/internal/pkg/geo"
	"github.com/skate-scout/internal/repository/memory"
	"github.com/skate-scout/internal/routing"
	"github.com/skate-scout/internal/usecase"
	"github.com/skate-scout/internal/usecase/dto"
)

var (
	studentServices = domain.Coordinate{Lat: 30.6150, Lng: -96.3400}
	zachry          = domain.Coordinate{Lat: 30.6200, Lng: -96.3400}

	// Route A goes straight north, route B detours east.
	routeAPoints = []domain.Coordinate{studentServices, {Lat: 30.6175, Lng: -96.3400}, zachry}
	routeBPoints = []domain.Coordinate{
		studentServices,
		{Lat: 30.6150, Lng: -96.3350},
		{Lat: 30.6200, Lng: -96.3350},
		zachry,
	}
)

func testProviderConfig() config.ProviderConfig {
	return config.ProviderConfig{
		WaypointTimeout:  time.Second,
		ElevationTimeout: time.Second,
		MaxParallel:      4,
	}
}

func step(maneuver string, meters float64) domain.Step {
	return domain.Step{Maneuver: maneuver, DistanceMeters: meters, DurationSeconds: meters / 1.4}
}

func campusRoutes(domain.DirectionsQuery) []*domain.Route {
	return []*domain.Route{
		{
			Index:    0,
			Type:     domain.RouteTypeRegular,
			Summary:  "A",
			Polyline: geo.EncodePolyline(routeAPoints),
			Legs: []domain.Leg{{
				DistanceMeters:  556,
				DurationSeconds: 400,
				Steps:           []domain.Step{step("", 278), step("straight", 278)},
			}},
		},
		{
			Index:    1,
			Type:     domain.RouteTypeRegular,
			Summary:  "B",
			Polyline: geo.EncodePolyline(routeBPoints),
			Legs: []domain.Leg{{
				DistanceMeters:  1510,
				DurationSeconds: 1080,
				Steps:           []domain.Step{step("", 477), step("turn-left", 556), step("turn-left", 477)},
			}},
		},
	}
}

func ptr(v float64) *float64 { return &v }

func TestRouteUseCase_FindRoutes_CampusScenario(t *testing.T) {
	ctx := context.Background()
	maps := &MockMapsRepository{}
	reports := memory.NewReportRepository()

	maps.On("Geocode", mock.Anything, "Student Services Building").Return(studentServices, nil)
	maps.On("Geocode", mock.Anything, "Zachry Engineering").Return(zachry, nil)
	maps.On("Directions", mock.Anything, regularQuery()).Return(campusRoutes, nil).Once()
	maps.On("Directions", mock.Anything, waypointQuery()).Return(nil, errors.New("ZERO_RESULTS"))
	maps.On("Elevation", mock.Anything, mock.Anything).Return(100.0, nil)

	// level-5 congestion at the shared start point, construction on route A only
	require.NoError(t, reports.Create(ctx, &domain.Report{
		ID: "congestion", Lat: studentServices.Lat, Lng: studentServices.Lng,
		Type: domain.ReportCongestion, Congestion: ptr(5),
	}))
	require.NoError(t, reports.Create(ctx, &domain.Report{
		ID: "construction", Lat: 30.6175, Lng: -96.3400, Type: domain.ReportConstruction,
	}))

	uc := usecase.NewRouteUseCase(maps, reports, routing.FixedJitter(0.5), testProviderConfig(), zap.NewNop())

	req := dto.RouteRequest{}
	req.Start.Address = "Student Services Building"
	req.End.Address = "Zachry Engineering"

	result, err := uc.FindRoutes(ctx, req)
	require.NoError(t, err)
	require.Len(t, result.AllRoutes, 2)

	routeA, routeB := result.AllRoutes[0], result.AllRoutes[1]
	assert.Equal(t, "A", routeA.Summary)
	assert.True(t, routeA.Blocked)
	assert.False(t, routeB.Blocked)

	for _, r := range result.AllRoutes {
		assert.Equal(t, 2.0, r.CongestionMultiplier)
	}
	assert.Equal(t, 2, routeA.MatchedReports)
	assert.Equal(t, 1, routeB.MatchedReports)

	assert.Same(t, routeB, result.ShortestPath)
	assert.Same(t, routeB, result.SafestPath)
	assert.Same(t, routeB, result.SmoothestPath)
	assert.Same(t, routeB, result.BalancedPath)
	assert.Nil(t, result.SingleTurnPath)

	assert.Equal(t, domain.ElevationAvailable, routeB.Elevation.Status)
	assert.Equal(t, domain.DifficultyFlat, routeB.Elevation.Difficulty)
	assert.InDelta(t, 1.51/15*60*2, routeB.SkateTime, 1e-9)

	// reports are not modified by a route request
	count, err := reports.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRouteUseCase_FindRoutes_BodyReportsAreRequestScoped(t *testing.T) {
	ctx := context.Background()
	maps := &MockMapsRepository{}
	reports := memory.NewReportRepository()

	maps.On("Directions", mock.Anything, regularQuery()).Return(campusRoutes, nil)
	maps.On("Directions", mock.Anything, waypointQuery()).Return(nil, errors.New("timeout"))
	maps.On("Elevation", mock.Anything, mock.Anything).Return(100.0, nil)

	uc := usecase.NewRouteUseCase(maps, reports, routing.FixedJitter(0), testProviderConfig(), zap.NewNop())

	req := dto.RouteRequest{
		Reports: []dto.CreateReportRequest{
			{Lat: ptr(30.6175), Lng: ptr(-96.3400), Type: "blocked"},
		},
	}
	req.Start.Coordinate = &studentServices
	req.End.Coordinate = &zachry

	result, err := uc.FindRoutes(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.AllRoutes[0].Blocked)
	assert.Equal(t, "B", result.ShortestPath.Summary)

	count, err := reports.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// coordinates need no geocoding
	maps.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestRouteUseCase_CollectCandidates_WaypointRoutes(t *testing.T) {
	ctx := context.Background()
	maps := &MockMapsRepository{}

	start := domain.Coordinate{Lat: 30.6150, Lng: -96.3450}
	end := domain.Coordinate{Lat: 30.6200, Lng: -96.3400}
	expected := routing.GenerateWaypoints(start, end)
	require.NotEmpty(t, expected)

	maps.On("Directions", mock.Anything, regularQuery()).Return(campusRoutes, nil)
	maps.On("Directions", mock.Anything, waypointQuery()).Return(func(q domain.DirectionsQuery) []*domain.Route {
		return []*domain.Route{{Index: 0, Type: domain.RouteTypeRegular, Summary: "via"}, {Index: 1}}
	}, nil)

	uc := usecase.NewRouteUseCase(maps, memory.NewReportRepository(), routing.FixedJitter(0), testProviderConfig(), zap.NewNop())

	routes, err := uc.CollectCandidates(ctx, domain.Location{Coordinate: &start}, domain.Location{Coordinate: &end})
	require.NoError(t, err)
	require.Len(t, routes, 2+len(expected))

	assert.Equal(t, 0, routes[0].Index)
	assert.Equal(t, 1, routes[1].Index)
	for i, wp := range expected {
		r := routes[2+i]
		assert.Equal(t, domain.RouteTypeWaypoint, r.Type)
		assert.Equal(t, -(i + 1), r.Index)
		require.NotNil(t, r.Waypoint)
		assert.Equal(t, wp.Coordinate, *r.Waypoint)
	}
}

func TestRouteUseCase_CollectCandidates_Failures(t *testing.T) {
	ctx := context.Background()
	start := domain.Location{Address: "Student Services Building"}
	end := domain.Location{Address: "Zachry Engineering"}

	t.Run("directions failure aborts", func(t *testing.T) {
		maps := &MockMapsRepository{}
		maps.On("Directions", mock.Anything, regularQuery()).Return(nil, errors.New("REQUEST_DENIED"))
		maps.On("Directions", mock.Anything, waypointQuery()).Return(nil, errors.New("canceled"))
		maps.On("Geocode", mock.Anything, mock.Anything).Return(studentServices, nil)

		uc := usecase.NewRouteUseCase(maps, memory.NewReportRepository(), routing.FixedJitter(0), testProviderConfig(), zap.NewNop())

		_, err := uc.CollectCandidates(ctx, start, end)
		assert.True(t, errors.Is(err, apperrors.ErrProviderFailure))
	})

	t.Run("geocoding failure aborts", func(t *testing.T) {
		maps := &MockMapsRepository{}
		maps.On("Directions", mock.Anything, regularQuery()).Return(campusRoutes, nil)
		maps.On("Geocode", mock.Anything, mock.Anything).Return(domain.Coordinate{}, errors.New("ZERO_RESULTS"))

		uc := usecase.NewRouteUseCase(maps, memory.NewReportRepository(), routing.FixedJitter(0), testProviderConfig(), zap.NewNop())

		_, err := uc.CollectCandidates(ctx, start, end)
		assert.True(t, errors.Is(err, apperrors.ErrProviderFailure))
	})

	t.Run("no routes", func(t *testing.T) {
		maps := &MockMapsRepository{}
		maps.On("Directions", mock.Anything, regularQuery()).Return([]*domain.Route{}, nil)
		maps.On("Directions", mock.Anything, waypointQuery()).Return(nil, errors.New("ZERO_RESULTS"))
		maps.On("Geocode", mock.Anything, mock.Anything).Return(studentServices, nil)

		uc := usecase.NewRouteUseCase(maps, memory.NewReportRepository(), routing.FixedJitter(0), testProviderConfig(), zap.NewNop())

		_, err := uc.CollectCandidates(ctx, start, end)
		assert.True(t, errors.Is(err, apperrors.ErrNoRoutesFound))
	})
}

func TestRouteUseCase_Enrich_ElevationUnavailable(t *testing.T) {
	maps := &MockMapsRepository{}
	maps.On("Elevation", mock.Anything, mock.Anything).Return(0.0, errors.New("OVER_QUERY_LIMIT"))

	uc := usecase.NewRouteUseCase(maps, memory.NewReportRepository(), routing.FixedJitter(0), testProviderConfig(), zap.NewNop())

	routes := campusRoutes(domain.DirectionsQuery{})
	uc.Enrich(context.Background(), routes, nil)

	for _, r := range routes {
		assert.Equal(t, domain.ElevationUnavailable, r.Elevation.Status)
		assert.Equal(t, domain.DifficultyUnknown, r.Elevation.Difficulty)
		assert.Equal(t, 0.0, r.Elevation.Difference)
		assert.Equal(t, 5.0, r.SmoothnessScore)
		assert.Equal(t, 1.0, r.CongestionMultiplier)
	}
	assert.Equal(t, 2, routes[1].NumTurns)
}

func TestRouteUseCase_FindRoutes_MissingEndpoints(t *testing.T) {
	uc := usecase.NewRouteUseCase(&MockMapsRepository{}, memory.NewReportRepository(), routing.FixedJitter(0), testProviderConfig(), zap.NewNop())

	_, err := uc.FindRoutes(context.Background(), dto.RouteRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
}

func TestRouteUseCase_FindRoutes_InvalidCoordinates(t *testing.T) {
	maps := &MockMapsRepository{}
	uc := usecase.NewRouteUseCase(maps, memory.NewReportRepository(), routing.FixedJitter(0), testProviderConfig(), zap.NewNop())

	_, err := uc.FindRoutes(context.Background(), dto.RouteRequest{
		Start: dto.Endpoint{Location: domain.Location{Coordinate: &domain.Coordinate{Lat: 999, Lng: -96.34}}},
		End:   dto.Endpoint{Location: domain.Location{Address: "Zachry Engineering"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCoordinates))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []string{"start"}, appErr.Details["fields"])

	// provider is never called
	maps.AssertNotCalled(t, "Directions", mock.Anything, mock.Anything)
	maps.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}
