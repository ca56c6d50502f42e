package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/flood-alert-backend/internal/dto"
)

// ParsedUUIDKey возвращает ключ контекста для разобранного параметра.
func ParsedUUIDKey(paramName string) string {
	return "uuid_param:" + paramName
}

// UUIDValidator проверяет, что параметр с указанным именем является валидным UUID.
// Использование: api.POST("/reports/:id/vote", UUIDValidator("id"), handler.Vote)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if idStr == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "параметр " + paramName + " обязателен",
			})
			return
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "параметр " + paramName + " должен быть валидным UUID",
			})
			return
		}

		c.Set(ParsedUUIDKey(paramName), id)
		c.Next()
	}
}
