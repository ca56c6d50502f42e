package service

import (
	"strings"
	"time"

	"github.com/ignatzorin/flood-alert-backend/internal/models"
)

// ActiveFilter повторяет панель фильтров карты.
type ActiveFilter struct {
	// Окно по reportedAt; 0 отключает ограничение.
	TimeRange    time.Duration
	Severities   []models.Severity
	Neighborhood string
}

// IsZero сообщает, что фильтр ничего не отсекает.
func (f ActiveFilter) IsZero() bool {
	return f.TimeRange <= 0 && len(f.Severities) == 0 && strings.TrimSpace(f.Neighborhood) == ""
}

// NeighborhoodOf возвращает район: вторую часть адреса через запятую.
func NeighborhoodOf(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// FilterReports оставляет отчёты, подходящие под фильтр. Порядок сохраняется.
func FilterReports(reports []models.FloodReport, f ActiveFilter, now time.Time) []models.FloodReport {
	neighborhood := strings.TrimSpace(f.Neighborhood)

	out := make([]models.FloodReport, 0, len(reports))
	for _, r := range reports {
		if f.TimeRange > 0 && now.Sub(r.ReportedAt) > f.TimeRange {
			continue
		}
		if len(f.Severities) > 0 && !containsSeverity(f.Severities, r.Severity) {
			continue
		}
		if neighborhood != "" && NeighborhoodOf(r.Address) != neighborhood {
			continue
		}
		out = append(out, r)
	}
	return out
}

// DistinctNeighborhoods возвращает районы без повторов в порядке первого появления.
func DistinctNeighborhoods(reports []models.FloodReport) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range reports {
		n := NeighborhoodOf(r.Address)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func containsSeverity(list []models.Severity, s models.Severity) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
