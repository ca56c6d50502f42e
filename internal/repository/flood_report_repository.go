package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/flood-alert-backend/internal/models"
	"github.com/ignatzorin/flood-alert-backend/internal/repository/common"
)

// ErrFloodReportNotFound оборачивает common.ErrNotFound, сервис проверяет именно его.
var ErrFloodReportNotFound = fmt.Errorf("flood report: %w", common.ErrNotFound)

// floodReportRow соответствует строке flood_reports.
type floodReportRow struct {
	ID         uuid.UUID `db:"id"`
	Lat        float64   `db:"lat"`
	Lng        float64   `db:"lng"`
	Address    string    `db:"address"`
	Severity   int       `db:"severity"`
	ReportedAt time.Time `db:"reported_at"`
	ReportedBy string    `db:"reported_by"`
	Comments   *string   `db:"comments"`
	ImageURL   *string   `db:"image_url"`
	Upvotes    int       `db:"upvotes"`
	Downvotes  int       `db:"downvotes"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r floodReportRow) toModel() models.FloodReport {
	return models.FloodReport{
		ID:         r.ID,
		Location:   models.Location{Lat: r.Lat, Lng: r.Lng},
		Address:    r.Address,
		Severity:   models.Severity(r.Severity),
		ReportedAt: r.ReportedAt,
		ReportedBy: r.ReportedBy,
		Comments:   r.Comments,
		ImageURL:   r.ImageURL,
		Upvotes:    r.Upvotes,
		Downvotes:  r.Downvotes,
		Status:     models.ReportStatus(r.Status),
	}
}

type FloodReportRepository struct {
	db *sqlx.DB
}

func NewFloodReportRepository(db *sqlx.DB) *FloodReportRepository {
	return &FloodReportRepository{db: db}
}

// Create сохраняет отчёт и перечитывает его из RETURNING *: id и значения
// по умолчанию назначает база.
func (r *FloodReportRepository) Create(ctx context.Context, report *models.FloodReport) error {
	row, err := common.Insert[floodReportRow](ctx, r.db, models.TableFloodReports, map[string]interface{}{
		"lat":         report.Location.Lat,
		"lng":         report.Location.Lng,
		"address":     report.Address,
		"severity":    int(report.Severity),
		"reported_at": report.ReportedAt,
		"reported_by": report.ReportedBy,
		"comments":    report.Comments,
		"image_url":   report.ImageURL,
		"upvotes":     report.Upvotes,
		"downvotes":   report.Downvotes,
		"status":      string(report.Status),
	})
	if err != nil {
		return err
	}
	*report = row.toModel()
	return nil
}

func (r *FloodReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FloodReport, error) {
	row, err := common.GetByID[floodReportRow](ctx, r.db, models.TableFloodReports, id, ErrFloodReportNotFound)
	if err != nil {
		return nil, err
	}
	report := row.toModel()
	return &report, nil
}

// ListByStatus возвращает отчёты с заданным статусом, новые первыми.
func (r *FloodReportRepository) ListByStatus(ctx context.Context, status models.ReportStatus) ([]models.FloodReport, error) {
	rows, err := common.SelectByField[floodReportRow](ctx, r.db, models.TableFloodReports, "status", string(status), "reported_at DESC")
	if err != nil {
		return nil, err
	}

	reports := make([]models.FloodReport, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, row.toModel())
	}
	return reports, nil
}

// UpdateVotes записывает счётчики и статус, вычисленные сервисом.
// Версии строки нет: параллельные голоса перезаписывают друг друга.
func (r *FloodReportRepository) UpdateVotes(ctx context.Context, id uuid.UUID, upvotes, downvotes int, status models.ReportStatus) (*models.FloodReport, error) {
	if upvotes < 0 || downvotes < 0 {
		return nil, fmt.Errorf("update votes: %w: отрицательный счётчик", common.ErrInvalidInput)
	}
	return r.update(ctx, id, map[string]interface{}{
		"upvotes":   upvotes,
		"downvotes": downvotes,
		"status":    string(status),
	})
}

func (r *FloodReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) (*models.FloodReport, error) {
	return r.update(ctx, id, map[string]interface{}{
		"status": string(status),
	})
}

func (r *FloodReportRepository) update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.FloodReport, error) {
	row, err := common.UpdateByID[floodReportRow](ctx, r.db, models.TableFloodReports, id, fields, ErrFloodReportNotFound)
	if err != nil {
		return nil, err
	}
	report := row.toModel()
	return &report, nil
}
