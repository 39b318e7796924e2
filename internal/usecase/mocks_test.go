package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/skate-scout/internal/domain"
)

// MockMapsRepository is a mock of MapsRepository.
// Directions also accepts a func(domain.DirectionsQuery) []*domain.Route as the
// first return value so each call can get fresh routes.
type MockMapsRepository struct {
	mock.Mock
}

func (m *MockMapsRepository) Directions(ctx context.Context, q domain.DirectionsQuery) ([]*domain.Route, error) {
	args := m.Called(ctx, q)
	switch v := args.Get(0).(type) {
	case func(domain.DirectionsQuery) []*domain.Route:
		return v(q), args.Error(1)
	case []*domain.Route:
		return v, args.Error(1)
	default:
		return nil, args.Error(1)
	}
}

func (m *MockMapsRepository) Elevation(ctx context.Context, p domain.Coordinate) (float64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockMapsRepository) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(domain.Coordinate), args.Error(1)
}

// MockReportEventPublisher is a mock of ReportEventPublisher
type MockReportEventPublisher struct {
	mock.Mock
}

func (m *MockReportEventPublisher) Publish(ctx context.Context, event domain.ReportEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func regularQuery() interface{} {
	return mock.MatchedBy(func(q domain.DirectionsQuery) bool { return q.Waypoint == nil })
}

func waypointQuery() interface{} {
	return mock.MatchedBy(func(q domain.DirectionsQuery) bool { return q.Waypoint != nil })
}
