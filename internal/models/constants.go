package models

import "fmt"

// Severity задаёт уровень подтопления.
type Severity int

const (
	SeverityLight    Severity = 1
	SeverityModerate Severity = 2
	SeveritySevere   Severity = 3
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityLight, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

func (s Severity) String() string {
	switch s {
	case SeverityLight:
		return "light"
	case SeverityModerate:
		return "moderate"
	case SeveritySevere:
		return "severe"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// ReportStatus хранит состояние отчёта в модерации.
type ReportStatus string

const (
	ReportStatusActive   ReportStatus = "active"
	ReportStatusResolved ReportStatus = "resolved"
	ReportStatusRejected ReportStatus = "rejected"
)

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusActive, ReportStatusResolved, ReportStatusRejected:
		return true
	}
	return false
}

// IsTerminal: из resolved и rejected голосование статус уже не меняет.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusResolved || s == ReportStatusRejected
}

// CanTransitionTo описывает переходы модерации. rejected → resolved разрешён:
// ручное закрытие применяется к отчёту в любом состоянии.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	transitions := map[ReportStatus][]ReportStatus{
		ReportStatusActive:   {ReportStatusResolved, ReportStatusRejected},
		ReportStatusRejected: {ReportStatusResolved},
		ReportStatusResolved: {},
	}

	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

func (v VoteType) IsValid() bool {
	return v == VoteUp || v == VoteDown
}
