package dto

import (
	"strings"
	"time"

	"github.com/ignatzorin/flood-alert-backend/internal/models"
)

// DefaultReporter подставляется, если форма не передала автора.
const DefaultReporter = "anonymous"

// LocationRequest описывает точку, выбранную на карте.
type LocationRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// CreateFloodReportRequest represents POST /api/reports body
type CreateFloodReportRequest struct {
	Location   *LocationRequest `json:"location" binding:"required"`
	Address    string           `json:"address"`
	Severity   int              `json:"severity"`
	ReportedAt *time.Time       `json:"reportedAt"`
	ReportedBy string           `json:"reportedBy"`
	Comments   *string          `json:"comments"`
	ImageURL   *string          `json:"imageUrl"`
}

// ToDraft собирает черновик; пустые reportedAt и reportedBy заполняются как в форме.
func (r CreateFloodReportRequest) ToDraft(now time.Time) models.FloodReportDraft {
	d := models.FloodReportDraft{
		Address:    strings.TrimSpace(r.Address),
		Severity:   models.Severity(r.Severity),
		ReportedBy: strings.TrimSpace(r.ReportedBy),
		Comments:   r.Comments,
		ImageURL:   r.ImageURL,
	}
	if r.Location != nil && r.Location.Lat != nil && r.Location.Lng != nil {
		d.Location = models.Location{Lat: *r.Location.Lat, Lng: *r.Location.Lng}
	}
	if r.ReportedAt != nil {
		d.ReportedAt = r.ReportedAt.UTC()
	} else {
		d.ReportedAt = now.UTC()
	}
	if d.ReportedBy == "" {
		d.ReportedBy = DefaultReporter
	}
	if d.Comments != nil && strings.TrimSpace(*d.Comments) == "" {
		d.Comments = nil
	}
	if d.ImageURL != nil && strings.TrimSpace(*d.ImageURL) == "" {
		d.ImageURL = nil
	}
	return d
}

// VoteRequest represents POST /api/reports/:id/vote body
type VoteRequest struct {
	Type string `json:"type" binding:"required"`
}
