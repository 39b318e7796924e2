package domain

import "github.com/skate-scout/internal/pkg/geo"

type Coordinate = geo.Coordinate

// RouteType - происхождение маршрута-кандидата
type RouteType string

const (
	RouteTypeRegular  RouteType = "regular"
	RouteTypeWaypoint RouteType = "waypoint"
)

// Step - шаг маршрута с меткой манёвра провайдера (turn-left, fork-right, ...)
type Step struct {
	Maneuver        string  `json:"maneuver,omitempty"`
	Instruction     string  `json:"instruction,omitempty"`
	DistanceMeters  float64 `json:"distance"`
	DurationSeconds float64 `json:"duration"`
}

// Leg - участок маршрута между двумя остановками
type Leg struct {
	DistanceMeters  float64    `json:"distance"`
	DurationSeconds float64    `json:"duration"`
	StartLocation   Coordinate `json:"startLocation"`
	EndLocation     Coordinate `json:"endLocation"`
	Steps           []Step     `json:"steps"`
}

// Route - маршрут-кандидат. Legs - внутренние данные провайдера и в ответ не попадают.
// Производные поля заполняются один раз при обогащении (см. routing.ApplyMetrics).
type Route struct {
	Index    int         `json:"index"`
	Type     RouteType   `json:"type"`
	Summary  string      `json:"summary,omitempty"`
	Waypoint *Coordinate `json:"waypoint,omitempty"`
	Polyline string      `json:"polyline"`
	Legs     []Leg       `json:"-"`

	Distance             float64          `json:"distance"`  // km
	Duration             float64          `json:"duration"`  // walking, min
	SkateTime            float64          `json:"skateTime"` // min
	NumTurns             int              `json:"numTurns"`
	Roughness            float64          `json:"roughness"`
	SmoothnessScore      float64          `json:"smoothnessScore"`
	CongestionMultiplier float64          `json:"congestionMultiplier"`
	Blocked              bool             `json:"blocked"`
	Elevation            ElevationProfile `json:"elevation"`
	Calories             int              `json:"calories"`
	MatchedReports       int              `json:"matchedReports"`
}

// TotalSteps - число шагов по всем участкам
func (r *Route) TotalSteps() int {
	n := 0
	for _, leg := range r.Legs {
		n += len(leg.Steps)
	}
	return n
}

// DistanceKm - сумма дистанций участков в километрах
func (r *Route) DistanceKm() float64 {
	var meters float64
	for _, leg := range r.Legs {
		meters += leg.DistanceMeters
	}
	return meters / 1000
}

// DurationMinutes - пешеходное время по данным провайдера
func (r *Route) DurationMinutes() float64 {
	var seconds float64
	for _, leg := range r.Legs {
		seconds += leg.DurationSeconds
	}
	return seconds / 60
}

// OptimalPaths - лучшие маршруты по каждому критерию. nil - нет подходящего кандидата.
type OptimalPaths struct {
	ShortestPath   *Route   `json:"shortestPath"`
	SafestPath     *Route   `json:"safestPath"`
	SmoothestPath  *Route   `json:"smoothestPath"`
	BalancedPath   *Route   `json:"balancedPath"`
	SingleTurnPath *Route   `json:"singleTurnPath"`
	AllRoutes      []*Route `json:"allRoutes"`
}
