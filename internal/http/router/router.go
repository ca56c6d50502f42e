package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignatzorin/flood-alert-backend/internal/config"
	"github.com/ignatzorin/flood-alert-backend/internal/http/handlers"
	"github.com/ignatzorin/flood-alert-backend/internal/http/middleware"
)

func SetupRouter(
	cfg *config.Config,
	reportHandler *handlers.FloodReportHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	reports := api.Group("/reports")
	{
		reports.GET("", reportHandler.ListActive)
		reports.POST("", reportHandler.Create)
		reports.GET("/neighborhoods", reportHandler.Neighborhoods)
		reports.GET("/:id", middleware.UUIDValidator("id"), reportHandler.Get)
		reports.POST("/:id/vote", middleware.UUIDValidator("id"), reportHandler.Vote)
		reports.POST("/:id/resolve", middleware.UUIDValidator("id"), reportHandler.Resolve)
	}

	return r
}
