package routing

import (
	"math"

	"github.com/skate-scout/internal/pkg/geo"
)

type WaypointKind string

const (
	WaypointRightAngle WaypointKind = "right-angle"
	WaypointDiagonal   WaypointKind = "diagonal"

	maxRightAngleWaypoints = 3

	// |Δlat|/|Δlng| около 1 - перекрёсток лежит на диагонали 45°/135°
	minBearingRatio = 0.8
	maxBearingRatio = 1.2
)

var diagonalFractions = []float64{0.33, 0.5, 0.67}

// Intersection - именованный перекрёсток кампуса
type Intersection struct {
	Name       string
	Coordinate geo.Coordinate
}

// CampusIntersections - опорные перекрёстки сетки кампуса
var CampusIntersections = []Intersection{
	{Name: "Ross St & Ireland St", Coordinate: geo.Coordinate{Lat: 30.61660, Lng: -96.33920}},
	{Name: "Lamar St & Houston St", Coordinate: geo.Coordinate{Lat: 30.61500, Lng: -96.34120}},
	{Name: "Joe Routt Blvd & Houston St", Coordinate: geo.Coordinate{Lat: 30.61280, Lng: -96.34200}},
	{Name: "Spence St & Lewis St", Coordinate: geo.Coordinate{Lat: 30.61630, Lng: -96.33750}},
	{Name: "Bizzell St & Lubbock St", Coordinate: geo.Coordinate{Lat: 30.61250, Lng: -96.33960}},
	{Name: "Olsen Blvd & George Bush Dr", Coordinate: geo.Coordinate{Lat: 30.60650, Lng: -96.34650}},
}

// Waypoint - промежуточная точка для альтернативного маршрута
type Waypoint struct {
	Kind       WaypointKind
	Name       string
	Coordinate geo.Coordinate
}

// GenerateWaypoints возвращает до 3 right-angle точек и 3 diagonal точки.
// Порядок стабилен: он задаёт отрицательные индексы waypoint-маршрутов.
func GenerateWaypoints(start, end geo.Coordinate) []Waypoint {
	waypoints := RightAngleWaypoints(start, end, CampusIntersections)
	return append(waypoints, DiagonalWaypoints(start, end)...)
}

// RightAngleWaypoints - углы прямоугольника start/end, затем перекрёстки на диагонали
func RightAngleWaypoints(start, end geo.Coordinate, intersections []Intersection) []Waypoint {
	result := make([]Waypoint, 0, maxRightAngleWaypoints)

	corners := []geo.Coordinate{
		{Lat: start.Lat, Lng: end.Lng},
		{Lat: end.Lat, Lng: start.Lng},
	}
	for _, c := range corners {
		// при совпадающей широте/долготе угол вырождается в start или end
		if c == start || c == end {
			continue
		}
		result = append(result, Waypoint{Kind: WaypointRightAngle, Name: "corner", Coordinate: c})
	}

	for _, in := range intersections {
		if len(result) >= maxRightAngleWaypoints {
			break
		}
		if onDiagonal(in.Coordinate, start) || onDiagonal(in.Coordinate, end) {
			result = append(result, Waypoint{Kind: WaypointRightAngle, Name: in.Name, Coordinate: in.Coordinate})
		}
	}
	return result
}

// DiagonalWaypoints - интерполяция на 33%, 50%, 67% прямой start→end
func DiagonalWaypoints(start, end geo.Coordinate) []Waypoint {
	result := make([]Waypoint, 0, len(diagonalFractions))
	for _, f := range diagonalFractions {
		result = append(result, Waypoint{
			Kind:       WaypointDiagonal,
			Coordinate: geo.Interpolate(start, end, f),
		})
	}
	return result
}

func onDiagonal(p, ref geo.Coordinate) bool {
	dLat := math.Abs(p.Lat - ref.Lat)
	dLng := math.Abs(p.Lng - ref.Lng)
	if dLng == 0 {
		return false
	}
	ratio := dLat / dLng
	return ratio >= minBearingRatio && ratio <= maxBearingRatio
}
