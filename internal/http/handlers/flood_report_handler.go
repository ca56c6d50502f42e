package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ignatzorin/flood-alert-backend/internal/dto"
	"github.com/ignatzorin/flood-alert-backend/internal/http/handlers/common"
	"github.com/ignatzorin/flood-alert-backend/internal/models"
	"github.com/ignatzorin/flood-alert-backend/internal/service"
)

// FloodReportService описывает операции над отчётами для HTTP-слоя.
type FloodReportService interface {
	ListActive(ctx context.Context) []models.FloodReport
	ListActiveFiltered(ctx context.Context, f service.ActiveFilter) []models.FloodReport
	Neighborhoods(ctx context.Context) []string
	Get(ctx context.Context, id uuid.UUID) (*models.FloodReport, error)
	Create(ctx context.Context, draft models.FloodReportDraft) (*models.FloodReport, error)
	Vote(ctx context.Context, id uuid.UUID, voteType models.VoteType) (*models.FloodReport, error)
	Resolve(ctx context.Context, id uuid.UUID) (*models.FloodReport, error)
}

// MaxFilterHours ограничивает окно фильтра по времени одним годом.
const MaxFilterHours = 24 * 365

type FloodReportHandler struct {
	reports FloodReportService
	clock   clockwork.Clock
}

func NewFloodReportHandler(reports FloodReportService, clock clockwork.Clock) *FloodReportHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &FloodReportHandler{reports: reports, clock: clock}
}

// ListActive GET /api/reports?hours=6&severity=2,3&neighborhood=Centro
func (h *FloodReportHandler) ListActive(c *gin.Context) {
	hours, err := common.ParseIntQuery(c, "hours", 0, MaxFilterHours)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	rawSeverities, err := common.ParseIntListQuery(c, "severity")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	severities := make([]models.Severity, 0, len(rawSeverities))
	for _, v := range rawSeverities {
		s := models.Severity(v)
		if !s.IsValid() {
			common.RespondBadRequest(c, "уровень подтопления должен быть 1, 2 или 3")
			return
		}
		severities = append(severities, s)
	}

	filter := service.ActiveFilter{
		TimeRange:    time.Duration(hours) * time.Hour,
		Severities:   severities,
		Neighborhood: strings.TrimSpace(c.Query("neighborhood")),
	}

	var reports []models.FloodReport
	if filter.IsZero() {
		reports = h.reports.ListActive(c.Request.Context())
	} else {
		reports = h.reports.ListActiveFiltered(c.Request.Context(), filter)
	}
	common.RespondJSON(c, http.StatusOK, dto.FloodReportListResponse(reports))
}

// Neighborhoods GET /api/reports/neighborhoods
func (h *FloodReportHandler) Neighborhoods(c *gin.Context) {
	common.RespondJSON(c, http.StatusOK, dto.NeighborhoodsResponse{
		Neighborhoods: h.reports.Neighborhoods(c.Request.Context()),
	})
}

// Get GET /api/reports/:id
func (h *FloodReportHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный id отчёта")
		return
	}

	report, err := h.reports.Get(c.Request.Context(), id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, report)
}

// Create POST /api/reports
func (h *FloodReportHandler) Create(c *gin.Context) {
	var req dto.CreateFloodReportRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "выберите точку на карте и заполните обязательные поля")
		return
	}

	report, err := h.reports.Create(c.Request.Context(), req.ToDraft(h.clock.Now()))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusCreated, report)
}

// Vote POST /api/reports/:id/vote
func (h *FloodReportHandler) Vote(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный id отчёта")
		return
	}

	var req dto.VoteRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "тип голоса должен быть up или down")
		return
	}

	report, err := h.reports.Vote(c.Request.Context(), id, models.VoteType(strings.ToLower(strings.TrimSpace(req.Type))))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, report)
}

// Resolve POST /api/reports/:id/resolve
func (h *FloodReportHandler) Resolve(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный id отчёта")
		return
	}

	report, err := h.reports.Resolve(c.Request.Context(), id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, report)
}
