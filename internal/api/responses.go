package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonesrussell/ticket-triage/internal/domain"
)

// ProcessTicketRequest is the body for POST /process-ticket.
type ProcessTicketRequest struct {
	TicketID    string `json:"ticket_id"   binding:"required,uuid"`
	Description string `json:"description" binding:"required"`
}

// ProcessTicketResponse is the response for a processed ticket.
type ProcessTicketResponse struct {
	TicketID  uuid.UUID        `json:"ticket_id"`
	Category  domain.Category  `json:"category"`
	Sentiment domain.Sentiment `json:"sentiment"`
	Processed bool             `json:"processed"`
}

func toProcessTicketResponse(ticketID uuid.UUID, analysis domain.TicketAnalysis) ProcessTicketResponse {
	return ProcessTicketResponse{
		TicketID:  ticketID,
		Category:  analysis.Category,
		Sentiment: analysis.Sentiment,
		Processed: true,
	}
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps the domain error taxonomy to HTTP statuses. Unknown
// errors map to 500 without leaking internal detail.
func statusForError(err error) (int, string) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		repoErr       *domain.RepositoryError
		serviceErr    *domain.ExternalServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, validationErr.Error()
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, notFoundErr.Error()
	case errors.As(err, &repoErr):
		return http.StatusBadGateway, "persistence failed"
	case errors.As(err, &serviceErr):
		return http.StatusServiceUnavailable, serviceErr.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
