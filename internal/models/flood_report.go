package models

import (
	"time"

	"github.com/google/uuid"
)

const TableFloodReports = "flood_reports"

// Location хранит координаты WGS84.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FloodReport описывает отчёт жителя о подтоплении.
type FloodReport struct {
	ID         uuid.UUID    `json:"id"`
	Location   Location     `json:"location"`
	Address    string       `json:"address"`
	Severity   Severity     `json:"severity"`
	ReportedAt time.Time    `json:"reportedAt"`
	ReportedBy string       `json:"reportedBy"`
	Comments   *string      `json:"comments,omitempty"`
	ImageURL   *string      `json:"imageUrl,omitempty"`
	Upvotes    int          `json:"upvotes"`
	Downvotes  int          `json:"downvotes"`
	Status     ReportStatus `json:"status"`
}

// FloodReportDraft содержит данные нового отчёта до сохранения.
type FloodReportDraft struct {
	Location   Location
	Address    string
	Severity   Severity
	ReportedAt time.Time
	ReportedBy string
	Comments   *string
	ImageURL   *string
}

// NewFloodReport собирает отчёт из черновика: сам автор считается первым голосом «за».
func NewFloodReport(d FloodReportDraft) *FloodReport {
	return &FloodReport{
		Location:   d.Location,
		Address:    d.Address,
		Severity:   d.Severity,
		ReportedAt: d.ReportedAt,
		ReportedBy: d.ReportedBy,
		Comments:   d.Comments,
		ImageURL:   d.ImageURL,
		Upvotes:    1,
		Downvotes:  0,
		Status:     ReportStatusActive,
	}
}
