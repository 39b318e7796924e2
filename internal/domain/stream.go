package domain

import "time"

// StreamReportEvents - стрим изменений набора отчётов
const StreamReportEvents = "stream:reports:events"

type ReportAction string

const (
	ReportCreated ReportAction = "created"
	ReportDeleted ReportAction = "deleted"
	ReportExpired ReportAction = "expired"
)

// ReportEvent - событие изменения набора отчётов. Для deleted и expired
// заполнен только ReportID (и Count для expired).
type ReportEvent struct {
	Action     ReportAction `json:"action"`
	ReportID   string       `json:"report_id,omitempty"`
	Report     *Report      `json:"report,omitempty"`
	Count      int          `json:"count,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewReportCreatedEvent создает событие о новом отчёте
func NewReportCreatedEvent(report Report, at time.Time) ReportEvent {
	return ReportEvent{
		Action:     ReportCreated,
		ReportID:   report.ID,
		Report:     &report,
		OccurredAt: at,
	}
}

func NewReportDeletedEvent(id string, at time.Time) ReportEvent {
	return ReportEvent{
		Action:     ReportDeleted,
		ReportID:   id,
		OccurredAt: at,
	}
}

func NewReportsExpiredEvent(count int, at time.Time) ReportEvent {
	return ReportEvent{
		Action:     ReportExpired,
		Count:      count,
		OccurredAt: at,
	}
}
