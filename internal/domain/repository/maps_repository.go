package repository

import (
	"context"

	"github.com/skate-scout/internal/domain"
)

// MapsRepository определяет методы внешнего провайдера карт
type MapsRepository interface {
	// Directions возвращает маршруты-кандидаты в порядке провайдера.
	// Legs и Polyline заполнены, производные метрики - нет.
	Directions(ctx context.Context, query domain.DirectionsQuery) ([]*domain.Route, error)

	// Elevation возвращает высоту точки в метрах
	Elevation(ctx context.Context, point domain.Coordinate) (float64, error)

	// Geocode переводит текстовый адрес в координату
	Geocode(ctx context.Context, address string) (domain.Coordinate, error)
}
