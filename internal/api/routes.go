package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes. metricsHandler serves Prometheus
// metrics; pass nil to skip the endpoint.
func SetupRoutes(router *gin.Engine, handler *Handler, metricsHandler http.Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		meetings := v1.Group("/meetings")
		{
			meetings.GET("", handler.ListMeetings)       // GET /api/v1/meetings
			meetings.GET("/export", handler.ExportCSV)   // GET /api/v1/meetings/export
			meetings.GET("/:id", handler.GetMeeting)     // GET /api/v1/meetings/:id
		}

		v1.GET("/stats", handler.GetStats) // GET /api/v1/stats
	}
}
