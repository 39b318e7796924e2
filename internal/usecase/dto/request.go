package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/skate-scout/internal/domain"
)

// Endpoint - точка маршрута: строка-адрес или объект {lat, lng}
type Endpoint struct {
	domain.Location
}

func (e *Endpoint) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		e.Location = domain.Location{}
		return nil
	}

	if data[0] == '"' {
		var address string
		if err := json.Unmarshal(data, &address); err != nil {
			return err
		}
		e.Location = domain.Location{Address: strings.TrimSpace(address)}
		return nil
	}

	var point struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal(data, &point); err != nil {
		return fmt.Errorf("endpoint must be an address or {lat, lng}: %w", err)
	}
	if point.Lat == nil || point.Lng == nil {
		return fmt.Errorf("endpoint object requires lat and lng")
	}
	e.Location = domain.Location{Coordinate: &domain.Coordinate{Lat: *point.Lat, Lng: *point.Lng}}
	return nil
}

func (e Endpoint) MarshalJSON() ([]byte, error) {
	if e.Coordinate != nil {
		return json.Marshal(e.Coordinate)
	}
	return json.Marshal(e.Address)
}

// RouteRequest - запрос на поиск маршрутов.
// Reports объединяются с хранилищем только на время этого запроса.
type RouteRequest struct {
	Start   Endpoint              `json:"start"`
	End     Endpoint              `json:"end"`
	Reports []CreateReportRequest `json:"reports,omitempty" validate:"omitempty,dive"`
}

// CreateReportRequest - новый отчёт пользователя. lat/lng - указатели, чтобы 0 был допустимым значением
type CreateReportRequest struct {
	Lat         *float64 `json:"lat" validate:"required,latitude"`
	Lng         *float64 `json:"lng" validate:"required,longitude"`
	Type        string   `json:"type" validate:"required,max=64"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Congestion  *float64 `json:"congestion,omitempty" validate:"omitempty,min=1,max=5"`
	Description string   `json:"description,omitempty" validate:"max=500"`
}

// ToReport собирает доменный отчёт; id и время создания задаёт сервер
func (r CreateReportRequest) ToReport(id string, createdAt time.Time) domain.Report {
	report := domain.Report{
		ID:          id,
		Type:        domain.ReportType(strings.ToLower(strings.TrimSpace(r.Type))),
		Rating:      r.Rating,
		Congestion:  r.Congestion,
		Description: r.Description,
		CreatedAt:   createdAt,
	}
	if r.Lat != nil {
		report.Lat = *r.Lat
	}
	if r.Lng != nil {
		report.Lng = *r.Lng
	}
	return report
}
