package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/flood-alert-backend/internal/models"
)

func TestCreateFloodReportRequest_ToDraft_Defaults(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	var req CreateFloodReportRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"location": {"lat": -23.95, "lng": -46.33},
		"address": " Rua X, Centro, Santos ",
		"severity": 3,
		"comments": "  ",
		"imageUrl": ""
	}`), &req))

	d := req.ToDraft(now)
	assert.Equal(t, models.Location{Lat: -23.95, Lng: -46.33}, d.Location)
	assert.Equal(t, "Rua X, Centro, Santos", d.Address)
	assert.Equal(t, models.SeveritySevere, d.Severity)
	assert.Equal(t, now, d.ReportedAt)
	assert.Equal(t, DefaultReporter, d.ReportedBy)
	assert.Nil(t, d.Comments)
	assert.Nil(t, d.ImageURL)
}

func TestCreateFloodReportRequest_ToDraft_KeepsClientValues(t *testing.T) {
	var req CreateFloodReportRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"location": {"lat": 1, "lng": 2},
		"address": "a, b",
		"severity": 1,
		"reportedAt": "2025-02-10T09:30:00-03:00",
		"reportedBy": "maria"
	}`), &req))

	d := req.ToDraft(time.Now())
	assert.Equal(t, time.Date(2025, 2, 10, 12, 30, 0, 0, time.UTC), d.ReportedAt)
	assert.Equal(t, "maria", d.ReportedBy)
}
