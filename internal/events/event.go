package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/flood-alert-backend/internal/models"
)

// Типы событий жизненного цикла отчёта.
const (
	TypeReportCreated  = "flood_report.created"
	TypeReportVoted    = "flood_report.voted"
	TypeReportRejected = "flood_report.rejected"
	TypeReportResolved = "flood_report.resolved"
)

// ReportEvent содержит снимок отчёта после изменения.
type ReportEvent struct {
	Type       string              `json:"type"`
	ReportID   uuid.UUID           `json:"reportId"`
	Status     models.ReportStatus `json:"status"`
	Severity   models.Severity     `json:"severity"`
	Location   models.Location     `json:"location"`
	Upvotes    int                 `json:"upvotes"`
	Downvotes  int                 `json:"downvotes"`
	Vote       models.VoteType     `json:"vote,omitempty"`
	OccurredAt time.Time           `json:"occurredAt"`
}

// NewReportEvent строит событие по текущему состоянию отчёта.
func NewReportEvent(eventType string, r *models.FloodReport, at time.Time) ReportEvent {
	return ReportEvent{
		Type:       eventType,
		ReportID:   r.ID,
		Status:     r.Status,
		Severity:   r.Severity,
		Location:   r.Location,
		Upvotes:    r.Upvotes,
		Downvotes:  r.Downvotes,
		OccurredAt: at,
	}
}

// Publisher отправляет события во внешнюю шину.
type Publisher interface {
	Publish(ctx context.Context, events ...ReportEvent) error
	Close() error
}

// NopPublisher используется, когда шина не настроена.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...ReportEvent) error { return nil }
func (NopPublisher) Close() error                                  { return nil }
