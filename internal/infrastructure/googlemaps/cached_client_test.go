package googlemaps

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skate-scout/internal/domain"
)

type mockMaps struct {
	mock.Mock
}

func (m *mockMaps) Directions(ctx context.Context, q domain.DirectionsQuery) ([]*domain.Route, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Route), args.Error(1)
}

func (m *mockMaps) Elevation(ctx context.Context, p domain.Coordinate) (float64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockMaps) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(domain.Coordinate), args.Error(1)
}

type memoryCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, errors.New("connection refused")
	}
	return c.data[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

func TestCachedClient_Directions(t *testing.T) {
	ctx := context.Background()
	query := domain.DirectionsQuery{
		Origin:       domain.Location{Address: "Student Services Building"},
		Destination:  domain.Location{Address: "Zachry Engineering"},
		Alternatives: true,
	}
	upstream := []*domain.Route{
		{
			Index:    0,
			Type:     domain.RouteTypeRegular,
			Summary:  "Ross St",
			Polyline: "_p~iF~ps|U_ulLnnqC",
			Legs: []domain.Leg{{
				DistanceMeters:  850,
				DurationSeconds: 620,
				Steps:           []domain.Step{{Maneuver: "turn-left", DistanceMeters: 550}},
			}},
		},
	}

	next := &mockMaps{}
	next.On("Directions", ctx, query).Return(upstream, nil).Once()

	c := NewCachedClient(next, newMemoryCache(), time.Minute, zap.NewNop())

	first, err := c.Directions(ctx, query)
	require.NoError(t, err)
	assert.Same(t, upstream[0], first[0])

	second, err := c.Directions(ctx, query)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.NotSame(t, upstream[0], second[0])
	assert.Equal(t, upstream[0].Legs, second[0].Legs)
	assert.Equal(t, "Ross St", second[0].Summary)

	next.AssertExpectations(t)
}

func TestCachedClient_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	point := domain.Coordinate{Lat: 30.6156, Lng: -96.3409}

	next := &mockMaps{}
	next.On("Elevation", ctx, point).Return(0.0, errors.New("timeout")).Once()
	next.On("Elevation", ctx, point).Return(101.0, nil).Once()

	c := NewCachedClient(next, newMemoryCache(), time.Minute, zap.NewNop())

	_, err := c.Elevation(ctx, point)
	assert.Error(t, err)

	elevation, err := c.Elevation(ctx, point)
	require.NoError(t, err)
	assert.Equal(t, 101.0, elevation)

	// served from cache
	elevation, err = c.Elevation(ctx, point)
	require.NoError(t, err)
	assert.Equal(t, 101.0, elevation)

	next.AssertExpectations(t)
}

func TestCachedClient_CacheFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	cache.failGet = true

	next := &mockMaps{}
	next.On("Geocode", ctx, "Zachry Engineering").Return(domain.Coordinate{Lat: 30.621, Lng: -96.34}, nil).Twice()

	c := NewCachedClient(next, cache, time.Minute, zap.NewNop())

	for i := 0; i < 2; i++ {
		coord, err := c.Geocode(ctx, "Zachry Engineering")
		require.NoError(t, err)
		assert.Equal(t, 30.621, coord.Lat)
	}

	next.AssertExpectations(t)
}
