package routing

import (
	"math"
	"strings"

	"github.com/skate-scout/internal/domain"
	"github.com/skate-scout/internal/pkg/geo"
)

const (
	skateSpeedKmh = 15.0

	maxSmoothness = 5.0

	caloriesPerSkateMinute  = 6.0
	caloriesPerKm           = 45.0
	caloriesPerMeterClimb   = 10.0
	caloriesPerMeterDescent = 2.0

	// порог направления уклона, м
	directionThresholdMeters = 1.0
)

type elevationBucket struct {
	maxDiff    float64
	difficulty string
	color      string
}

// границы по модулю перепада, м; последняя корзина без верхней границы
var elevationBuckets = []elevationBucket{
	{3, domain.DifficultyFlat, "#4CAF50"},
	{8, domain.DifficultyEasy, "#8BC34A"},
	{15, domain.DifficultyModerate, "#FFC107"},
	{25, domain.DifficultyHard, "#FF9800"},
	{math.Inf(1), domain.DifficultyVeryHard, "#F44336"},
}

// CountTurns - число поворотов по меткам манёвров всех участков.
// turn-left/turn-right без slight, плюс каждый roundabout и fork.
func CountTurns(legs []domain.Leg) int {
	turns := 0
	for _, leg := range legs {
		for _, step := range leg.Steps {
			m := step.Maneuver
			if m == "" {
				continue
			}
			if (strings.Contains(m, "turn-left") || strings.Contains(m, "turn-right")) &&
				!strings.Contains(m, "slight") {
				turns++
			}
			if strings.Contains(m, "roundabout") || strings.Contains(m, "fork") {
				turns++
			}
		}
	}
	return turns
}

// SmoothnessScore - среднее rating по smoothness-отчётам; 5.0 без отчётов
func SmoothnessScore(reports []domain.Report) float64 {
	var sum float64
	n := 0
	for i := range reports {
		if reports[i].Type != domain.ReportSmoothness || reports[i].Rating == nil {
			continue
		}
		sum += *reports[i].Rating
		n++
	}
	if n == 0 {
		return maxSmoothness
	}
	return sum / float64(n)
}

// CongestionMultiplier - множитель времени по congestion-отчётам; 1.0 без отчётов
func CongestionMultiplier(reports []domain.Report) float64 {
	var sum float64
	n := 0
	for i := range reports {
		if reports[i].Type != domain.ReportCongestion || reports[i].Congestion == nil {
			continue
		}
		sum += *reports[i].Congestion
		n++
	}
	if n == 0 {
		return 1.0
	}
	return CongestionMultiplierFor(sum / float64(n))
}

// CongestionMultiplierFor переводит уровень 1..5 в множитель 1.0..2.0
func CongestionMultiplierFor(avgLevel float64) float64 {
	return 1 + (avgLevel-1)*0.25
}

// IsBlocked - есть ли среди отчётов стройка или перекрытие
func IsBlocked(reports []domain.Report) bool {
	for i := range reports {
		if reports[i].Blocks() {
			return true
		}
	}
	return false
}

// Roughness - totalSteps * jitter * 0.5 + (5 - smoothness) * 2
func Roughness(totalSteps int, smoothness float64, jitter JitterSource) float64 {
	return float64(totalSteps)*jitter.Float64()*0.5 + (maxSmoothness-smoothness)*2
}

// SkateMinutes - время на скорости 15 км/ч с учётом загруженности
func SkateMinutes(distanceKm, congestionMultiplier float64) float64 {
	return distanceKm / skateSpeedKmh * 60 * congestionMultiplier
}

// Calories - round((skate*6 + km*45)/2 + подъём*10 | спуск*2)
func Calories(distanceKm, skateMinutes, elevationDiff float64) int {
	base := skateMinutes * caloriesPerSkateMinute
	distance := distanceKm * caloriesPerKm

	var elevation float64
	switch {
	case elevationDiff > 0:
		elevation = elevationDiff * caloriesPerMeterClimb
	case elevationDiff < 0:
		elevation = -elevationDiff * caloriesPerMeterDescent
	}

	return int(math.Round((base+distance)/2 + elevation))
}

// ClassifyElevation строит профиль по высотам начала и конца маршрута
func ClassifyElevation(startElevation, endElevation float64) domain.ElevationProfile {
	diff := endElevation - startElevation
	abs := math.Abs(diff)

	profile := domain.ElevationProfile{
		Status:         domain.ElevationAvailable,
		StartElevation: startElevation,
		EndElevation:   endElevation,
		Difference:     diff,
		Direction:      domain.DirectionFlat,
	}

	for _, b := range elevationBuckets {
		if abs < b.maxDiff {
			profile.Difficulty = b.difficulty
			profile.Color = b.color
			break
		}
	}

	switch {
	case diff > directionThresholdMeters:
		profile.Direction = domain.DirectionUphill
	case diff < -directionThresholdMeters:
		profile.Direction = domain.DirectionDownhill
	}

	return profile
}

// Endpoints - первая и последняя точки полилинии
func Endpoints(points []geo.Coordinate) (start, end geo.Coordinate, ok bool) {
	if len(points) == 0 {
		return geo.Coordinate{}, geo.Coordinate{}, false
	}
	return points[0], points[len(points)-1], true
}

// ApplyMetrics заполняет производные поля маршрута.
// matched - отчёты, совпавшие с этим маршрутом; elevation - уже полученный профиль.
func ApplyMetrics(route *domain.Route, matched []domain.Report, elevation domain.ElevationProfile, jitter JitterSource) {
	route.Distance = route.DistanceKm()
	route.Duration = route.DurationMinutes()
	route.NumTurns = CountTurns(route.Legs)
	route.SmoothnessScore = SmoothnessScore(matched)
	route.Roughness = Roughness(route.TotalSteps(), route.SmoothnessScore, jitter)
	route.CongestionMultiplier = CongestionMultiplier(matched)
	route.Blocked = IsBlocked(matched)
	route.Elevation = elevation
	route.SkateTime = SkateMinutes(route.Distance, route.CongestionMultiplier)
	route.Calories = Calories(route.Distance, route.SkateTime, elevation.Difference)
	route.MatchedReports = len(matched)
}
