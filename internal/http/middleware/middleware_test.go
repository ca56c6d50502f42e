package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/flood-alert-backend/internal/pkg/apperror"
)

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUUIDValidator_StoresParsedID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got interface{}
	r.GET("/reports/:id", UUIDValidator("id"), func(c *gin.Context) {
		got, _ = c.Get(ParsedUUIDKey("id"))
		c.Status(http.StatusOK)
	})

	id := uuid.New()
	w := serve(r, http.MethodGet, "/reports/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, got)

	w = serve(r, http.MethodGet, "/reports/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://alerta.example.org"}))
	r.GET("/api/reports", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/api/reports", map[string]string{"Origin": "https://alerta.example.org"})
	assert.Equal(t, "https://alerta.example.org", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/api/reports", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodOptions, "/api/reports", map[string]string{"Origin": "https://alerta.example.org"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestErrorHandler_MapsAppErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/missing", func(c *gin.Context) { _ = c.Error(apperror.ErrFloodReportNotFound) })
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("sql: connection reset")) })

	w := serve(r, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "не найден")

	w = serve(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "sql:")
}
