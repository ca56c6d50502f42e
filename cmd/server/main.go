package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/flood-alert-backend/internal/config"
	"github.com/ignatzorin/flood-alert-backend/internal/db"
	"github.com/ignatzorin/flood-alert-backend/internal/events"
	httpHandlers "github.com/ignatzorin/flood-alert-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/flood-alert-backend/internal/http/router"
	"github.com/ignatzorin/flood-alert-backend/internal/lock"
	"github.com/ignatzorin/flood-alert-backend/internal/logger"
	"github.com/ignatzorin/flood-alert-backend/internal/observability"
	"github.com/ignatzorin/flood-alert-backend/internal/repository"
	"github.com/ignatzorin/flood-alert-backend/internal/service"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		logger.Log.Fatalf("main: ошибка миграций: %v", err)
	}

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	reportRepo := repository.NewFloodReportRepository(dbConn)
	reportService := service.NewFloodReportService(reportRepo, metrics)
	reportService.SetClock(clock)
	reportService.SetStoreTimeout(cfg.StoreTimeout)

	cache := service.NewCacheService()
	defer cache.Close()
	reportService.SetCache(cache, cfg.ActiveCacheTTL)

	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Redis нужен только для блокировки голосов.
	if cfg.RedisAddress != "" {
		redisClient, err := lock.NewRedisClient(ctx, cfg.RedisAddress)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{"address": cfg.RedisAddress, "error": err}).
				Warn("main: redis недоступен, голоса без блокировки")
		} else {
			defer closeRedis(redisClient)
			healthHandler.AddCheck("redis", func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			})
			if cfg.VoteLockEnabled {
				reportService.SetVoteLocker(lock.NewRedisVoteLocker(redisClient, cfg.VoteLockTTL))
				logger.Log.WithField("ttl", cfg.VoteLockTTL).Info("main: блокировка голосов включена")
			}
		}
	}

	if cfg.KafkaEnabled() {
		publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer closePublisher(publisher)
		reportService.SetPublisher(publisher)
		logger.Log.WithFields(logrus.Fields{"brokers": cfg.KafkaBrokers, "topic": cfg.KafkaTopic}).
			Info("main: публикация событий в kafka включена")
	}

	reportHandler := httpHandlers.NewFloodReportHandler(reportService, clock)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, reportHandler, healthHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	logger.Log.Infof("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.Errorf("main: ошибка закрытия базы: %v", err)
	}
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		logger.Log.Errorf("main: ошибка закрытия redis: %v", err)
	}
}

func closePublisher(p events.Publisher) {
	if err := p.Close(); err != nil {
		logger.Log.Errorf("main: ошибка закрытия kafka writer: %v", err)
	}
}
