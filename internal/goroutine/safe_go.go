package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/ignatzorin/flood-alert-backend/internal/logger"
)

// Logger интерфейс для логирования ошибок
type Logger interface {
	Errorf(format string, args ...interface{})
}

// RecoveryHandler обрабатывает panic в горутинах
type RecoveryHandler struct {
	logger Logger
}

// NewRecoveryHandler создает новый обработчик
func NewRecoveryHandler(logger Logger) *RecoveryHandler {
	return &RecoveryHandler{logger: logger}
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer rh.recover()
		fn(ctx)
	}()
}

func (rh *RecoveryHandler) recover() {
	if r := recover(); r != nil {
		rh.logger.Errorf("Panic in goroutine: %v\nStack trace:\n%s", r, debug.Stack())
	}
}

// appLogger читает logger.Log при каждом вызове: logger.Init может заменить его после старта.
type appLogger struct{}

func (appLogger) Errorf(format string, args ...interface{}) {
	logger.Log.Errorf(format, args...)
}

// DefaultRecoveryHandler - глобальный обработчик, пишет в логгер приложения
var DefaultRecoveryHandler = NewRecoveryHandler(appLogger{})

// SafeGoWithContext - упрощенная функция для запуска безопасной горутины с контекстом
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	DefaultRecoveryHandler.SafeGoWithContext(ctx, fn)
}
