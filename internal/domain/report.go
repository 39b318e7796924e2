package domain

import "time"

type ReportType string

const (
	ReportSmoothness   ReportType = "smoothness"
	ReportCongestion   ReportType = "congestion"
	ReportConstruction ReportType = "construction"
	ReportBlocked      ReportType = "blocked"
)

// Report - пользовательское наблюдение в точке. Неизменяемо после создания.
type Report struct {
	ID          string     `json:"id"`
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	Type        ReportType `json:"type"`
	Rating      *float64   `json:"rating,omitempty"`     // 1-5, smoothness
	Congestion  *float64   `json:"congestion,omitempty"` // 1-5, congestion
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (r *Report) Coordinate() Coordinate {
	return Coordinate{Lat: r.Lat, Lng: r.Lng}
}

// Blocks - отчёт закрывает проезд
func (r *Report) Blocks() bool {
	return r.Type == ReportConstruction || r.Type == ReportBlocked
}
