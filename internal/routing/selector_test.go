package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skate-scout/internal/domain"
	"github.com/skate-scout/internal/routing"
)

func candidates() []*domain.Route {
	return []*domain.Route{
		{Index: 0, Distance: 1.2, SkateTime: 4.8, NumTurns: 3, Roughness: 4, SmoothnessScore: 5},
		{Index: 1, Distance: 1.5, SkateTime: 6.0, NumTurns: 1, Roughness: 2, SmoothnessScore: 4},
		{Index: -1, Type: domain.RouteTypeWaypoint, Distance: 1.4, SkateTime: 5.6, NumTurns: 1, Roughness: 1, SmoothnessScore: 3},
		{Index: -2, Type: domain.RouteTypeWaypoint, Distance: 2.0, SkateTime: 8.0, NumTurns: 2, Roughness: 0.5, SmoothnessScore: 5},
	}
}

func TestSelectOptimal(t *testing.T) {
	routes := candidates()
	result := routing.SelectOptimal(routes)

	assert.Same(t, routes[0], result.ShortestPath)
	assert.Same(t, routes[1], result.SafestPath) // tie with -1, first wins
	assert.Same(t, routes[3], result.SmoothestPath)
	assert.Same(t, routes[2], result.SingleTurnPath)
	// balanced: (1/3 + 1/4)/2 = 0.2917 for -1 is the minimum
	assert.Same(t, routes[2], result.BalancedPath)
	assert.Len(t, result.AllRoutes, 4)
}

func TestSelectOptimal_Invariants(t *testing.T) {
	routes := candidates()
	result := routing.SelectOptimal(routes)

	for _, r := range routes {
		assert.LessOrEqual(t, result.ShortestPath.SkateTime, r.SkateTime)
		assert.LessOrEqual(t, result.SafestPath.NumTurns, r.NumTurns)
		if r.NumTurns == 1 {
			assert.LessOrEqual(t, result.SingleTurnPath.Distance, r.Distance)
		}
	}
}

func TestSelectOptimal_SkipsBlocked(t *testing.T) {
	routes := candidates()
	routes[0].Blocked = true
	routes[2].Blocked = true

	result := routing.SelectOptimal(routes)

	assert.Same(t, routes[1], result.ShortestPath)
	assert.Same(t, routes[1], result.SafestPath)
	assert.Same(t, routes[1], result.SingleTurnPath)
	assert.Len(t, result.AllRoutes, 4)
	assert.True(t, result.AllRoutes[0].Blocked)
}

func TestSelectOptimal_AllBlockedFallsBack(t *testing.T) {
	routes := candidates()
	for _, r := range routes {
		r.Blocked = true
	}

	result := routing.SelectOptimal(routes)

	require.NotNil(t, result.ShortestPath)
	require.NotNil(t, result.SafestPath)
	require.NotNil(t, result.SmoothestPath)
	require.NotNil(t, result.BalancedPath)
	assert.Same(t, routes[0], result.ShortestPath)
}

func TestSelectOptimal_NoSingleTurn(t *testing.T) {
	routes := []*domain.Route{
		{Index: 0, SkateTime: 3, NumTurns: 0},
		{Index: 1, SkateTime: 4, NumTurns: 2},
	}

	result := routing.SelectOptimal(routes)

	assert.Nil(t, result.SingleTurnPath)
	assert.Same(t, routes[0], result.SafestPath)
	// zero turns and zero roughness: maxima floor at 1
	assert.Same(t, routes[0], result.BalancedPath)
}

func TestSelectOptimal_Empty(t *testing.T) {
	result := routing.SelectOptimal(nil)
	assert.NotNil(t, result.AllRoutes)
	assert.Empty(t, result.AllRoutes)
	assert.Nil(t, result.ShortestPath)
}
