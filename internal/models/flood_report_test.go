package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewFloodReport_Defaults(t *testing.T) {
	comment := "água na altura do joelho"
	draft := FloodReportDraft{
		Location:   Location{Lat: -23.9608, Lng: -46.3336},
		Address:    "Av. Ana Costa, Gonzaga, Santos",
		Severity:   SeverityModerate,
		ReportedAt: time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC),
		ReportedBy: "anonymous",
		Comments:   &comment,
	}

	r := NewFloodReport(draft)

	assert.Equal(t, uuid.Nil, r.ID)
	assert.Equal(t, 1, r.Upvotes)
	assert.Equal(t, 0, r.Downvotes)
	assert.Equal(t, ReportStatusActive, r.Status)
	assert.Equal(t, draft.Location, r.Location)
	assert.Equal(t, draft.Address, r.Address)
	assert.Equal(t, draft.Severity, r.Severity)
	assert.Equal(t, draft.ReportedAt, r.ReportedAt)
	assert.Equal(t, draft.ReportedBy, r.ReportedBy)
	assert.Equal(t, &comment, r.Comments)
	assert.Nil(t, r.ImageURL)
}

func TestSeverity_IsValid(t *testing.T) {
	assert.True(t, SeverityLight.IsValid())
	assert.True(t, SeveritySevere.IsValid())
	assert.False(t, Severity(0).IsValid())
	assert.False(t, Severity(4).IsValid())
	assert.Equal(t, "moderate", SeverityModerate.String())
}

func TestReportStatus_IsTerminal(t *testing.T) {
	assert.False(t, ReportStatusActive.IsTerminal())
	assert.True(t, ReportStatusResolved.IsTerminal())
	assert.True(t, ReportStatusRejected.IsTerminal())
	assert.False(t, ReportStatus("pending").IsValid())
}

func TestVoteType_IsValid(t *testing.T) {
	assert.True(t, VoteUp.IsValid())
	assert.True(t, VoteDown.IsValid())
	assert.False(t, VoteType("sideways").IsValid())
}

func TestReportStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, ReportStatusActive.CanTransitionTo(ReportStatusRejected))
	assert.True(t, ReportStatusActive.CanTransitionTo(ReportStatusResolved))
	assert.True(t, ReportStatusRejected.CanTransitionTo(ReportStatusResolved))
	assert.False(t, ReportStatusRejected.CanTransitionTo(ReportStatusActive))
	assert.False(t, ReportStatusResolved.CanTransitionTo(ReportStatusRejected))
	assert.False(t, ReportStatus("pending").CanTransitionTo(ReportStatusActive))
}
