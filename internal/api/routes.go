package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/ticket-triage/internal/telemetry"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, tel *telemetry.Provider) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if tel != nil {
		router.GET("/metrics", gin.WrapH(tel.Handler()))
	}

	// Ticket processing
	router.POST("/process-ticket", handler.ProcessTicket)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/stats", handler.GetStats)
	}
}
