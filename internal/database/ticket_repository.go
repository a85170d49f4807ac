package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/ticket-triage/internal/domain"
)

// TicketRepository handles database operations for support tickets.
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// MarkProcessed applies a classification analysis to a ticket and flags it
// processed. An unknown ticket id fails with NotFoundError; any other
// persistence failure maps to RepositoryError.
func (r *TicketRepository) MarkProcessed(ctx context.Context, ticketID uuid.UUID, analysis domain.TicketAnalysis) error {
	query := `
		UPDATE tickets
		SET category = $1, sentiment = $2, processed = TRUE, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, analysis.Category, analysis.Sentiment, ticketID)
	if err != nil {
		return domain.WrapRepositoryError(err, "failed to update ticket %s", ticketID)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.WrapRepositoryError(err, "failed to check rows affected for ticket %s", ticketID)
	}

	if rowsAffected == 0 {
		return domain.NewNotFoundError("ticket not found: %s", ticketID)
	}

	return nil
}

// GetByID retrieves a ticket by its id.
func (r *TicketRepository) GetByID(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, error) {
	var ticket domain.Ticket
	query := `
		SELECT id, description, category, sentiment, processed
		FROM tickets
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &ticket, query, ticketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("ticket not found: %s", ticketID)
		}
		return nil, domain.WrapRepositoryError(err, "failed to get ticket %s", ticketID)
	}

	return &ticket, nil
}

// Ping verifies database connectivity, used by the readiness check.
func (r *TicketRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}
