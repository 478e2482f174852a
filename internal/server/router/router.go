package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chemstock/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/state", handler.GetState)
		api.PUT("/state", handler.ReplaceState)
		api.GET("/dashboard", handler.GetDashboard)

		api.POST("/chemicals", handler.CreateChemical)
		api.PUT("/chemicals/order", handler.ReorderChemicals)
		api.PUT("/chemicals/:id", handler.UpdateChemical)
		api.PATCH("/chemicals/:id", handler.PatchChemical)
		api.DELETE("/chemicals/:id", handler.DeleteChemical)

		api.PUT("/config/shifts", handler.UpdateShifts)

		api.GET("/snapshots", handler.ListSnapshots)
		api.POST("/snapshots", handler.CaptureSnapshot)
		api.GET("/snapshots/:date", handler.GetSnapshot)
		api.DELETE("/snapshots/:date", handler.DeleteSnapshot)
		api.GET("/snapshots/:date/dashboard", handler.SnapshotDashboard)

		api.POST("/reports/daily", handler.TriggerDailyReport)
		api.POST("/alerts/test", handler.TestAlert)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
