package dto

import (
	"time"

	"github.com/skate-scout/internal/domain"
)

// ReportListResponse - все отчёты в порядке добавления
type ReportListResponse []domain.Report

// HealthResponse - ответ health-check
type HealthResponse struct {
	Status  string    `json:"status"`
	Reports int       `json:"reports"`
	Time    time.Time `json:"time"`
}
