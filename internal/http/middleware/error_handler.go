package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/flood-alert-backend/internal/dto"
	"github.com/ignatzorin/flood-alert-backend/internal/logger"
	"github.com/ignatzorin/flood-alert-backend/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Логирует c.Errors и маскирует внутренние ошибки, если ответ ещё не отправлен.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		status := apperror.HTTPStatusOf(err.Err)

		entry := logger.Log.WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": status,
		})
		if status >= http.StatusInternalServerError {
			entry.Error("http: ошибка запроса")
		} else {
			entry.Warn("http: ошибка запроса")
		}

		// Ответ уже отправлен обработчиком
		if c.Writer.Written() {
			return
		}

		c.JSON(status, dto.ErrorResponse{Error: apperror.MessageOf(err.Err)})
	}
}
