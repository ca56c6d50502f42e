package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/flood-alert-backend/internal/models"
	"github.com/ignatzorin/flood-alert-backend/internal/repository/common"
)

func TestErrFloodReportNotFound_WrapsCommonNotFound(t *testing.T) {
	assert.True(t, errors.Is(ErrFloodReportNotFound, common.ErrNotFound))

	wrapped := fmt.Errorf("vote: %w", ErrFloodReportNotFound)
	assert.ErrorIs(t, wrapped, common.ErrNotFound)
	assert.ErrorIs(t, wrapped, ErrFloodReportNotFound)
}

func TestFloodReportRow_ToModel(t *testing.T) {
	id := uuid.New()
	reportedAt := time.Date(2025, 2, 10, 9, 30, 0, 0, time.UTC)
	comment := "вода по щиколотку"

	row := floodReportRow{
		ID:         id,
		Lat:        55.75,
		Lng:        37.61,
		Address:    "ул. Ленина 1, Центральный",
		Severity:   2,
		ReportedAt: reportedAt,
		ReportedBy: "anonymous",
		Comments:   &comment,
		Upvotes:    1,
		Downvotes:  0,
		Status:     "active",
		CreatedAt:  reportedAt.Add(time.Second),
	}

	report := row.toModel()
	assert.Equal(t, id, report.ID)
	assert.Equal(t, models.Location{Lat: 55.75, Lng: 37.61}, report.Location)
	assert.Equal(t, models.Severity(2), report.Severity)
	assert.Equal(t, reportedAt, report.ReportedAt)
	assert.Equal(t, &comment, report.Comments)
	assert.Nil(t, report.ImageURL)
	assert.Equal(t, models.ReportStatusActive, report.Status)
}
