package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/flood-alert-backend/internal/models"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 1, 12, 21, 5, 0, 0, time.UTC)
	id := uuid.New()
	report := &models.FloodReport{
		ID:        id,
		Location:  models.Location{Lat: -23.96, Lng: -46.33},
		Severity:  models.SeveritySevere,
		Upvotes:   1,
		Downvotes: 3,
		Status:    models.ReportStatusRejected,
	}

	msg, err := serializeToMessage(NewReportEvent(TypeReportRejected, report, now))
	require.NoError(t, err)

	assert.Equal(t, []byte(id.String()), msg.Key)
	assert.Contains(t, string(msg.Value), `"type":"flood_report.rejected"`)
	assert.Contains(t, string(msg.Value), `"status":"rejected"`)
	assert.Contains(t, string(msg.Value), `"downvotes":3`)
	assert.NotContains(t, string(msg.Value), `"vote"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte(TypeReportRejected), msg.Headers[0].Value)
	assert.Equal(t, "occurred_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestKafkaPublisher_PublishNothing(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "flood-report-events")
	defer p.Close()

	assert.NoError(t, p.Publish(context.Background()))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), ReportEvent{Type: TypeReportCreated}))
	assert.NoError(t, p.Close())
}
