package routing

import (
	"sort"

	"github.com/tidwall/rtree"

	"github.com/skate-scout/internal/domain"
	"github.com/skate-scout/internal/pkg/geo"
)

// ReportIndex - R-tree по точкам отчётов, строится один раз на запрос
type ReportIndex struct {
	reports []domain.Report
	tree    rtree.RTreeG[int]
}

func NewReportIndex(reports []domain.Report) *ReportIndex {
	idx := &ReportIndex{reports: reports}
	for i := range reports {
		p := [2]float64{reports[i].Lng, reports[i].Lat}
		idx.tree.Insert(p, p, i)
	}
	return idx
}

// Len - количество проиндексированных отчётов
func (idx *ReportIndex) Len() int {
	return len(idx.reports)
}

// Match возвращает отчёты в пределах geo.ProximityThresholdKm от полилинии,
// в исходном порядке. Один отчёт может совпасть с любым числом маршрутов.
func (idx *ReportIndex) Match(points []geo.Coordinate) []domain.Report {
	if len(points) == 0 || len(idx.reports) == 0 {
		return nil
	}

	bound := geo.PadKm(geo.Bounds(points), geo.ProximityThresholdKm)

	var candidates []int
	idx.tree.Search(
		[2]float64(bound.Min),
		[2]float64(bound.Max),
		func(min, max [2]float64, i int) bool {
			candidates = append(candidates, i)
			return true
		},
	)
	sort.Ints(candidates)

	matched := make([]domain.Report, 0, len(candidates))
	for _, i := range candidates {
		if MatchesRoute(&idx.reports[i], points) {
			matched = append(matched, idx.reports[i])
		}
	}
	return matched
}

// MatchesRoute - отчёт лежит не дальше 50 м от какого-либо отрезка маршрута
func MatchesRoute(report *domain.Report, points []geo.Coordinate) bool {
	return geo.IsPointNearPolyline(report.Coordinate(), points, geo.ProximityThresholdKm)
}
