package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jonesrussell/ticket-triage/internal/database"
	"github.com/jonesrussell/ticket-triage/internal/domain"
)

// TicketService is the use case consumed by the handler.
type TicketService interface {
	Process(ctx context.Context, ticketID uuid.UUID, description string) (domain.TicketAnalysis, error)
}

// StatsProvider serves aggregate classification stats.
type StatsProvider interface {
	GetStats(ctx context.Context) (*database.Stats, error)
}

// Pinger reports dependency liveness for the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Logger defines the logging interface.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Handler handles HTTP requests for the triage API.
type Handler struct {
	service        TicketService
	stats          StatsProvider
	db             Pinger
	logger         Logger
	serviceName    string
	serviceVersion string
}

// NewHandler creates a new API handler.
func NewHandler(service TicketService, stats StatsProvider, db Pinger, log Logger, serviceName, serviceVersion string) *Handler {
	return &Handler{
		service:        service,
		stats:          stats,
		db:             db,
		logger:         log,
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
	}
}

// ProcessTicket handles POST /process-ticket.
func (h *Handler) ProcessTicket(c *gin.Context) {
	var req ProcessTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid process-ticket request", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ticketID, err := uuid.Parse(req.TicketID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "ticket_id must be a UUID"})
		return
	}

	h.logger.Info("processing ticket", "ticket_id", ticketID.String())

	analysis, err := h.service.Process(c.Request.Context(), ticketID, req.Description)
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("ticket processing failed", "ticket_id", ticketID.String(), "error", err)
		} else {
			h.logger.Warn("ticket processing failed", "ticket_id", ticketID.String(), "status", status, "error", err)
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, toProcessTicketResponse(ticketID, analysis))
}

// GetStats handles GET /api/v1/stats.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.stats.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load stats", "error", err)
		// Empty stats rather than an error so dashboards keep rendering.
		c.JSON(http.StatusOK, database.Stats{
			ByCategory:  map[string]int{},
			BySentiment: map[string]int{},
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
		"version": h.serviceVersion,
	})
}

// ReadyCheck handles GET /ready.
func (h *Handler) ReadyCheck(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			h.logger.Warn("readiness check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"checks": gin.H{"postgresql": "failed"},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": gin.H{"postgresql": "ok"},
	})
}
