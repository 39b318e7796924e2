// Package geo содержит геометрию маршрутов: декодирование polyline,
// расстояния по большому кругу и проверку близости точки к линии.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"
)

const (
	earthRadiusKm = 6371.0

	// ProximityThresholdKm - радиус совпадения отчёта с маршрутом (50 м)
	ProximityThresholdKm = 0.05
)

// Coordinate - точка в градусах
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point - orb-представление (X = lng, Y = lat)
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// Valid проверяет диапазоны широты и долготы
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// DecodePolyline декодирует Google encoded polyline (точность 1e5).
// Пустая или битая строка даёт пустой срез.
func DecodePolyline(encoded string) []Coordinate {
	if encoded == "" {
		return []Coordinate{}
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return []Coordinate{}
	}

	points := make([]Coordinate, 0, len(coords))
	for _, c := range coords {
		points = append(points, Coordinate{Lat: c[0], Lng: c[1]})
	}
	return points
}

// EncodePolyline - обратная операция к DecodePolyline
func EncodePolyline(points []Coordinate) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lat, p.Lng})
	}
	return string(polyline.EncodeCoords(coords))
}

// GreatCircleDistance - расстояние по формуле гаверсинуса в километрах
func GreatCircleDistance(p1, p2 Coordinate) float64 {
	dLat := toRad(p2.Lat - p1.Lat)
	dLng := toRad(p2.Lng - p1.Lng)

	lat1 := toRad(p1.Lat)
	lat2 := toRad(p2.Lat)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// PointToSegmentDistance возвращает расстояние (км) от точки до отрезка ab.
// Параметр проекции считается на плоскости lat/lng и зажимается в [0,1],
// само расстояние до проекции - по большому кругу.
func PointToSegmentDistance(p, a, b Coordinate) float64 {
	dx := b.Lng - a.Lng
	dy := b.Lat - a.Lat

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return GreatCircleDistance(p, a)
	}

	t := ((p.Lng-a.Lng)*dx + (p.Lat-a.Lat)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	proj := Coordinate{
		Lat: a.Lat + t*dy,
		Lng: a.Lng + t*dx,
	}
	return GreatCircleDistance(p, proj)
}

// IsPointNearPolyline - true, если хотя бы один отрезок ближе thresholdKm.
// Полилиния из одной точки сравнивается с этой точкой.
func IsPointNearPolyline(p Coordinate, points []Coordinate, thresholdKm float64) bool {
	switch len(points) {
	case 0:
		return false
	case 1:
		return GreatCircleDistance(p, points[0]) < thresholdKm
	}

	for i := 0; i < len(points)-1; i++ {
		if PointToSegmentDistance(p, points[i], points[i+1]) < thresholdKm {
			return true
		}
	}
	return false
}

// Interpolate - точка на прямой a→b в доле fraction
func Interpolate(a, b Coordinate, fraction float64) Coordinate {
	return Coordinate{
		Lat: a.Lat + (b.Lat-a.Lat)*fraction,
		Lng: a.Lng + (b.Lng-a.Lng)*fraction,
	}
}

// Bounds - bbox полилинии
func Bounds(points []Coordinate) orb.Bound {
	ls := make(orb.LineString, 0, len(points))
	for _, p := range points {
		ls = append(ls, p.Point())
	}
	return ls.Bound()
}

// PadKm расширяет bbox на distanceKm во все стороны (приближение по широте bbox)
func PadKm(b orb.Bound, distanceKm float64) orb.Bound {
	kmPerDegLat := earthRadiusKm * math.Pi / 180.0
	lat := math.Max(math.Abs(b.Min.Lat()), math.Abs(b.Max.Lat()))
	kmPerDegLng := kmPerDegLat * math.Cos(toRad(lat))
	if kmPerDegLng < 1e-9 {
		kmPerDegLng = 1e-9
	}

	dLat := distanceKm / kmPerDegLat
	dLng := distanceKm / kmPerDegLng

	return orb.Bound{
		Min: orb.Point{b.Min.Lon() - dLng, b.Min.Lat() - dLat},
		Max: orb.Point{b.Max.Lon() + dLng, b.Max.Lat() + dLat},
	}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
