// Package processor implements the ticket processing use case: classify a
// ticket description, persist the result, return the analysis.
package processor

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonesrussell/ticket-triage/internal/classifier"
	"github.com/jonesrussell/ticket-triage/internal/domain"
	"github.com/jonesrussell/ticket-triage/internal/telemetry"
)

// Logger defines the logging interface.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// TicketRepository is the persistence collaborator consumed by the use case.
type TicketRepository interface {
	MarkProcessed(ctx context.Context, ticketID uuid.UUID, analysis domain.TicketAnalysis) error
}

// HistoryRecorder records classification outcomes for reporting.
type HistoryRecorder interface {
	Record(ctx context.Context, ticketID uuid.UUID, analysis domain.TicketAnalysis) error
}

// TicketProcessor orchestrates the use case: classify ticket text, then mark
// the ticket processed in the repository.
type TicketProcessor struct {
	chain     classifier.Classifier
	repo      TicketRepository
	history   HistoryRecorder
	telemetry *telemetry.Provider
	logger    Logger
}

// NewTicketProcessor creates a new ticket processor. history may be nil.
func NewTicketProcessor(chain classifier.Classifier, repo TicketRepository, history HistoryRecorder, tel *telemetry.Provider, log Logger) *TicketProcessor {
	return &TicketProcessor{
		chain:     chain,
		repo:      repo,
		history:   history,
		telemetry: tel,
		logger:    log,
	}
}

// Process classifies one ticket and persists the result.
//
// Classification errors surface only when the whole chain is exhausted or
// input is invalid; the repository is never invoked in that case.
// Persistence errors propagate unmodified: there is no compensation or
// retry after a successful classification.
func (p *TicketProcessor) Process(ctx context.Context, ticketID uuid.UUID, description string) (domain.TicketAnalysis, error) {
	analysis, err := p.chain.Classify(ctx, description)
	if err != nil {
		p.telemetry.Metrics.TicketsFailed.WithLabelValues("classification").Inc()
		return domain.TicketAnalysis{}, err
	}

	if err := p.repo.MarkProcessed(ctx, ticketID, analysis); err != nil {
		p.telemetry.Metrics.TicketsFailed.WithLabelValues("persistence").Inc()
		return domain.TicketAnalysis{}, err
	}

	p.telemetry.Metrics.TicketsProcessed.Inc()

	if p.history != nil {
		if histErr := p.history.Record(ctx, ticketID, analysis); histErr != nil {
			// History is reporting-only; never fail the request over it.
			p.logger.Warn("failed to record classification history",
				"ticket_id", ticketID.String(),
				"error", histErr,
			)
		}
	}

	p.logger.Info("ticket processed",
		"ticket_id", ticketID.String(),
		"category", string(analysis.Category),
		"sentiment", string(analysis.Sentiment),
	)

	return analysis, nil
}
