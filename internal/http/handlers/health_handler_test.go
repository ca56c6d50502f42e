package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	pingErr error
	stats   sql.DBStats
}

func (f fakeDB) PingContext(context.Context) error { return f.pingErr }
func (f fakeDB) Stats() sql.DBStats                { return f.stats }

func runHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.Health)

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHealthHandler_Healthy(t *testing.T) {
	code, resp := runHealth(t, NewHealthHandler(fakeDB{stats: sql.DBStats{MaxOpenConnections: 25, OpenConnections: 3}}))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Checks["connection_pool"])
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	code, resp := runHealth(t, NewHealthHandler(fakeDB{pingErr: errors.New("connection refused")}))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", resp.Status)
}

func TestHealthHandler_OptionalCheckDegrades(t *testing.T) {
	h := NewHealthHandler(fakeDB{})
	h.AddCheck("redis", func(context.Context) error { return errors.New("i/o timeout") })

	code, resp := runHealth(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", resp.Status)
	assert.Contains(t, resp.Checks["redis"], "i/o timeout")
}
