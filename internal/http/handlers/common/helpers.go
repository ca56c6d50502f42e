package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/flood-alert-backend/internal/dto"
	"github.com/ignatzorin/flood-alert-backend/internal/http/middleware"
	"github.com/ignatzorin/flood-alert-backend/internal/pkg/apperror"
)

// ErrInvalidUUID is returned when UUID parsing fails
var ErrInvalidUUID = errors.New("неверный формат UUID")

// ParseUUIDParam returns the id checked by middleware.UUIDValidator,
// falling back to parsing the URL parameter.
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	if raw, ok := c.Get(middleware.ParsedUUIDKey(paramName)); ok {
		if id, ok := raw.(uuid.UUID); ok {
			return id, nil
		}
	}

	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return parsed, nil
}

// BindAndValidate binds JSON request and returns properly formatted error
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return fmt.Errorf("ошибка валидации запроса: %w", err)
	}
	return nil
}

// RespondError sends a standardized error response
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondAppError переводит ошибку сервиса в HTTP-ответ.
// Неизвестные ошибки уходят в middleware.ErrorHandler.
func RespondAppError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		_ = c.Error(err)
		return
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(appErr.HTTPStatus, dto.ErrorResponse{Error: appErr.Message, Code: string(appErr.Code)})
}

// RespondJSON sends a JSON response with the given status code and data
func RespondJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, message)
}

// ParseIntQuery reads an integer query parameter in [0, maxValue].
func ParseIntQuery(c *gin.Context, key string, fallback, maxValue int) (int, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("параметр %s должен быть неотрицательным целым числом", key)
	}
	if parsed > maxValue {
		return 0, fmt.Errorf("параметр %s не может быть больше %d", key, maxValue)
	}
	return parsed, nil
}

// ParseIntListQuery разбирает список вида "1,2" из query.
func ParseIntListQuery(c *gin.Context, key string) ([]int, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}

	var out []int
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("параметр %s должен быть списком чисел через запятую", key)
		}
		out = append(out, n)
	}
	return out, nil
}
