package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/flood-alert-backend/internal/events"
	"github.com/ignatzorin/flood-alert-backend/internal/goroutine"
	"github.com/ignatzorin/flood-alert-backend/internal/logger"
	"github.com/ignatzorin/flood-alert-backend/internal/models"
	"github.com/ignatzorin/flood-alert-backend/internal/observability"
	"github.com/ignatzorin/flood-alert-backend/internal/pkg/apperror"
	"github.com/ignatzorin/flood-alert-backend/internal/repository/common"
	"github.com/ignatzorin/flood-alert-backend/internal/validation"
)

// RejectionMultiplier: отчёт отклоняется, когда после голоса «против»
// downvotes > upvotes * RejectionMultiplier.
const RejectionMultiplier = 2

const (
	defaultStoreTimeout = 5 * time.Second
	publishTimeout      = 5 * time.Second
)

type FloodReportStore interface {
	Create(ctx context.Context, report *models.FloodReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FloodReport, error)
	ListByStatus(ctx context.Context, status models.ReportStatus) ([]models.FloodReport, error)
	UpdateVotes(ctx context.Context, id uuid.UUID, upvotes, downvotes int, status models.ReportStatus) (*models.FloodReport, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) (*models.FloodReport, error)
}

// VoteLocker сериализует голоса по одному отчёту. Возвращает функцию освобождения.
type VoteLocker interface {
	Lock(ctx context.Context, reportID uuid.UUID) (func(), error)
}

type FloodReportService struct {
	store        FloodReportStore
	metrics      *observability.Metrics
	clock        clockwork.Clock
	cache        *CacheService
	cacheTTL     time.Duration
	locker       VoteLocker
	publisher    events.Publisher
	storeTimeout time.Duration
}

func NewFloodReportService(store FloodReportStore, metrics *observability.Metrics) *FloodReportService {
	return &FloodReportService{
		store:        store,
		metrics:      metrics,
		clock:        clockwork.NewRealClock(),
		publisher:    events.NopPublisher{},
		storeTimeout: defaultStoreTimeout,
	}
}

// SetClock подменяет часы (в тестах clockwork.NewFakeClock).
func (s *FloodReportService) SetClock(clock clockwork.Clock) {
	s.clock = clock
}

// SetCache включает кэш списка активных отчётов; ttl <= 0 выключает его.
func (s *FloodReportService) SetCache(cache *CacheService, ttl time.Duration) {
	if ttl <= 0 {
		s.cache = nil
		s.cacheTTL = 0
		return
	}
	s.cache = cache
	s.cacheTTL = ttl
}

func (s *FloodReportService) SetVoteLocker(locker VoteLocker) {
	s.locker = locker
}

func (s *FloodReportService) SetPublisher(publisher events.Publisher) {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	s.publisher = publisher
}

func (s *FloodReportService) SetStoreTimeout(d time.Duration) {
	if d > 0 {
		s.storeTimeout = d
	}
}

// ListActive возвращает активные отчёты, новые первыми.
// Ошибка хранилища логируется, клиент получает пустой список.
func (s *FloodReportService) ListActive(ctx context.Context) []models.FloodReport {
	if s.cache == nil {
		reports, err := s.loadActive(ctx)
		if err != nil {
			return []models.FloodReport{}
		}
		return reports
	}

	hit := true
	value, err := s.cache.GetOrSet(ActiveReportsCacheKey, s.cacheTTL, func() (interface{}, error) {
		hit = false
		return s.loadActive(ctx)
	})
	if hit {
		s.metrics.ActiveCache.WithLabelValues("hit").Inc()
	} else {
		s.metrics.ActiveCache.WithLabelValues("miss").Inc()
	}
	if err != nil {
		return []models.FloodReport{}
	}
	return copyReports(value.([]models.FloodReport))
}

func (s *FloodReportService) loadActive(ctx context.Context) ([]models.FloodReport, error) {
	var reports []models.FloodReport
	err := s.callStore(ctx, "list_active", func(ctx context.Context) error {
		var err error
		reports, err = s.store.ListByStatus(ctx, models.ReportStatusActive)
		return err
	})
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []models.FloodReport{}
	}
	return reports, nil
}

// ListActiveFiltered применяет фильтр к списку активных отчётов.
func (s *FloodReportService) ListActiveFiltered(ctx context.Context, f ActiveFilter) []models.FloodReport {
	reports := s.ListActive(ctx)
	if f.IsZero() {
		return reports
	}
	return FilterReports(reports, f, s.clock.Now())
}

// Neighborhoods возвращает районы активных отчётов.
func (s *FloodReportService) Neighborhoods(ctx context.Context) []string {
	return DistinctNeighborhoods(s.ListActive(ctx))
}

// Create проверяет черновик и сохраняет новый отчёт.
func (s *FloodReportService) Create(ctx context.Context, draft models.FloodReportDraft) (*models.FloodReport, error) {
	if err := validation.ValidateFloodReportDraft(draft); err != nil {
		return nil, apperror.Validation(err)
	}

	report := models.NewFloodReport(draft)
	err := s.callStore(ctx, "create", func(ctx context.Context) error {
		return s.store.Create(ctx, report)
	})
	if err != nil {
		return nil, s.mapStoreError(err)
	}

	s.metrics.ReportsCreated.Inc()
	s.invalidateActive()
	s.publish(events.NewReportEvent(events.TypeReportCreated, report, s.clock.Now()))

	logger.Log.WithFields(logrus.Fields{
		"report_id": report.ID,
		"severity":  report.Severity.String(),
	}).Info("service: отчёт создан")

	return report, nil
}

// Get возвращает отчёт по id.
func (s *FloodReportService) Get(ctx context.Context, id uuid.UUID) (*models.FloodReport, error) {
	var report *models.FloodReport
	err := s.callStore(ctx, "get", func(ctx context.Context) error {
		var err error
		report, err = s.store.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.mapStoreError(err)
	}
	return report, nil
}

// Vote учитывает голос и применяет правило модерации.
// Чтение и запись не атомарны; без блокировки параллельные голоса могут потеряться.
func (s *FloodReportService) Vote(ctx context.Context, id uuid.UUID, voteType models.VoteType) (*models.FloodReport, error) {
	if !voteType.IsValid() {
		return nil, apperror.ErrInvalidVoteType
	}

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, id)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"report_id": id,
				"error":     err,
			}).Warn("service: блокировка голоса не получена, голосуем без неё")
		} else {
			defer unlock()
		}
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	up, down, status := applyVote(current, voteType)

	var updated *models.FloodReport
	err = s.callStore(ctx, "update_votes", func(ctx context.Context) error {
		var err error
		updated, err = s.store.UpdateVotes(ctx, id, up, down, status)
		return err
	})
	if err != nil {
		return nil, s.mapStoreError(err)
	}

	s.metrics.Votes.WithLabelValues(string(voteType)).Inc()
	s.invalidateActive()

	evt := events.NewReportEvent(events.TypeReportVoted, updated, s.clock.Now())
	evt.Vote = voteType
	published := []events.ReportEvent{evt}

	if current.Status == models.ReportStatusActive && updated.Status == models.ReportStatusRejected {
		s.metrics.ReportsRejected.Inc()
		published = append(published, events.NewReportEvent(events.TypeReportRejected, updated, s.clock.Now()))
		logger.Log.WithFields(logrus.Fields{
			"report_id": id,
			"upvotes":   updated.Upvotes,
			"downvotes": updated.Downvotes,
		}).Info("service: отчёт отклонён голосами")
	}
	s.publish(published...)

	return updated, nil
}

// Resolve помечает отчёт решённым. Повторный вызов ничего не меняет.
func (s *FloodReportService) Resolve(ctx context.Context, id uuid.UUID) (*models.FloodReport, error) {
	var updated *models.FloodReport
	err := s.callStore(ctx, "resolve", func(ctx context.Context) error {
		var err error
		updated, err = s.store.UpdateStatus(ctx, id, models.ReportStatusResolved)
		return err
	})
	if err != nil {
		return nil, s.mapStoreError(err)
	}

	s.metrics.ReportsResolved.Inc()
	s.invalidateActive()
	s.publish(events.NewReportEvent(events.TypeReportResolved, updated, s.clock.Now()))

	return updated, nil
}

// applyVote считает новые счётчики и статус. Завершённые статусы не меняются.
func applyVote(r *models.FloodReport, voteType models.VoteType) (upvotes, downvotes int, status models.ReportStatus) {
	upvotes, downvotes, status = r.Upvotes, r.Downvotes, r.Status

	switch voteType {
	case models.VoteUp:
		upvotes++
	case models.VoteDown:
		downvotes++
		if downvotes > upvotes*RejectionMultiplier && status.CanTransitionTo(models.ReportStatusRejected) {
			status = models.ReportStatusRejected
		}
	}
	return upvotes, downvotes, status
}

// callStore выполняет обращение к хранилищу с таймаутом, метриками и логом.
func (s *FloodReportService) callStore(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	start := s.clock.Now()
	err := fn(ctx)
	s.metrics.StoreDuration.WithLabelValues(operation).Observe(s.clock.Since(start).Seconds())

	if err != nil && !errors.Is(err, common.ErrNotFound) {
		s.metrics.StoreErrors.WithLabelValues(operation).Inc()
		logger.Log.WithFields(logrus.Fields{
			"operation": operation,
			"error":     err,
		}).Error("service: ошибка хранилища отчётов")
	}
	return err
}

func (s *FloodReportService) mapStoreError(err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return apperror.ErrFloodReportNotFound
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, apperror.ErrStoreUnavailable.Message)
}

func (s *FloodReportService) invalidateActive() {
	if s.cache != nil {
		s.cache.InvalidateByPrefix(reportsCachePrefix)
	}
}

// publish отправляет события в фоне: сбой брокера не влияет на запрос.
func (s *FloodReportService) publish(evts ...events.ReportEvent) {
	publisher := s.publisher
	goroutine.SafeGoWithContext(context.Background(), func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()

		if err := publisher.Publish(ctx, evts...); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"event_type": evts[0].Type,
				"report_id":  evts[0].ReportID,
				"error":      err,
			}).Warn("service: не удалось опубликовать событие")
		}
	})
}

func copyReports(src []models.FloodReport) []models.FloodReport {
	out := make([]models.FloodReport, len(src))
	copy(out, src)
	return out
}
