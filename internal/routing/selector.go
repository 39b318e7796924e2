package routing

import (
	"math"

	"github.com/skate-scout/internal/domain"
)

// SelectOptimal выбирает лучший маршрут по каждому критерию.
// Рассматриваются незаблокированные маршруты, если они есть, иначе все.
// При равенстве побеждает первый встреченный. AllRoutes - весь набор, включая заблокированные.
func SelectOptimal(routes []*domain.Route) *domain.OptimalPaths {
	result := &domain.OptimalPaths{
		AllRoutes: routes,
	}
	if result.AllRoutes == nil {
		result.AllRoutes = []*domain.Route{}
	}
	if len(routes) == 0 {
		return result
	}

	considered := unblocked(routes)
	if len(considered) == 0 {
		considered = routes
	}

	result.ShortestPath = minBy(considered, func(r *domain.Route) float64 { return r.SkateTime })
	result.SafestPath = minBy(considered, func(r *domain.Route) float64 { return float64(r.NumTurns) })
	result.SmoothestPath = minBy(considered, func(r *domain.Route) float64 {
		return -(r.SmoothnessScore - r.Roughness/10)
	})

	maxTurns, maxRoughness := 1.0, 1.0
	for _, r := range considered {
		maxTurns = math.Max(maxTurns, float64(r.NumTurns))
		maxRoughness = math.Max(maxRoughness, r.Roughness)
	}
	result.BalancedPath = minBy(considered, func(r *domain.Route) float64 {
		return (float64(r.NumTurns)/maxTurns + r.Roughness/maxRoughness) / 2
	})

	var singleTurn []*domain.Route
	for _, r := range considered {
		if r.NumTurns == 1 {
			singleTurn = append(singleTurn, r)
		}
	}
	result.SingleTurnPath = minBy(singleTurn, func(r *domain.Route) float64 { return r.Distance })

	return result
}

func unblocked(routes []*domain.Route) []*domain.Route {
	out := make([]*domain.Route, 0, len(routes))
	for _, r := range routes {
		if !r.Blocked {
			out = append(out, r)
		}
	}
	return out
}

// minBy - первый маршрут с минимальным score; nil для пустого набора
func minBy(routes []*domain.Route, score func(*domain.Route) float64) *domain.Route {
	var best *domain.Route
	bestScore := math.Inf(1)
	for _, r := range routes {
		if s := score(r); best == nil || s < bestScore {
			best = r
			bestScore = s
		}
	}
	return best
}
