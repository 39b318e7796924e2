package googlemaps

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skate-scout/internal/domain"
	"github.com/skate-scout/internal/domain/repository"
)

const cacheKeyPrefix = "maps:"

// cachedRoute - сериализуемая форма маршрута: в domain.Route поле Legs скрыто от JSON
type cachedRoute struct {
	Summary  string       `json:"summary"`
	Polyline string       `json:"polyline"`
	Legs     []domain.Leg `json:"legs"`
}

type cachedClient struct {
	next   repository.MapsRepository
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClient оборачивает провайдера кешем ответов. Ошибки кеша не роняют запрос,
// ошибки провайдера не кешируются.
func NewCachedClient(
	next repository.MapsRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) repository.MapsRepository {
	return &cachedClient{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *cachedClient) Directions(ctx context.Context, query domain.DirectionsQuery) ([]*domain.Route, error) {
	key := directionsKey(query)

	var cached []cachedRoute
	if c.load(ctx, key, &cached) {
		return toRoutes(cached), nil
	}

	routes, err := c.next.Directions(ctx, query)
	if err != nil {
		return nil, err
	}

	entries := make([]cachedRoute, 0, len(routes))
	for _, r := range routes {
		entries = append(entries, cachedRoute{Summary: r.Summary, Polyline: r.Polyline, Legs: r.Legs})
	}
	c.store(ctx, key, entries)

	return routes, nil
}

func (c *cachedClient) Elevation(ctx context.Context, point domain.Coordinate) (float64, error) {
	key := fmt.Sprintf("%selevation:%.5f,%.5f", cacheKeyPrefix, point.Lat, point.Lng)

	var cached float64
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	elevation, err := c.next.Elevation(ctx, point)
	if err != nil {
		return 0, err
	}
	c.store(ctx, key, elevation)

	return elevation, nil
}

func (c *cachedClient) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	key := cacheKeyPrefix + "geocode:" + hashKey(strings.ToLower(strings.TrimSpace(address)))

	var cached domain.Coordinate
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	coord, err := c.next.Geocode(ctx, address)
	if err != nil {
		return domain.Coordinate{}, err
	}
	c.store(ctx, key, coord)

	return coord, nil
}

func (c *cachedClient) load(ctx context.Context, key string, out interface{}) bool {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Maps cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("Maps cache entry is corrupted", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *cachedClient) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Failed to marshal maps cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Maps cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// toRoutes создаёт новые маршруты на каждый вызов: обогащение мутирует их
func toRoutes(cached []cachedRoute) []*domain.Route {
	routes := make([]*domain.Route, 0, len(cached))
	for i, c := range cached {
		routes = append(routes, &domain.Route{
			Index:    i,
			Type:     domain.RouteTypeRegular,
			Summary:  c.Summary,
			Polyline: c.Polyline,
			Legs:     c.Legs,
		})
	}
	return routes
}

func directionsKey(q domain.DirectionsQuery) string {
	parts := []string{
		q.Origin.String(),
		q.Destination.String(),
		strconv.FormatBool(q.Alternatives),
	}
	if q.Waypoint != nil {
		parts = append(parts, fmt.Sprintf("%.6f,%.6f", q.Waypoint.Lat, q.Waypoint.Lng))
	}
	return cacheKeyPrefix + "directions:" + hashKey(strings.Join(parts, "|"))
}

func hashKey(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
