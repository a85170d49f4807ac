package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/ticket-triage/internal/domain"
)

// HistoryEntry is one recorded classification outcome.
type HistoryEntry struct {
	ID        int              `db:"id"`
	TicketID  uuid.UUID        `db:"ticket_id"`
	Category  domain.Category  `db:"category"`
	Sentiment domain.Sentiment `db:"sentiment"`
	CreatedAt time.Time        `db:"created_at"`
}

// Stats is the aggregate view over recorded classifications.
type Stats struct {
	TotalProcessed int            `json:"total_processed"`
	ByCategory     map[string]int `json:"by_category"`
	BySentiment    map[string]int `json:"by_sentiment"`
}

// HistoryRepository records classification outcomes for reporting. Writes
// are best-effort from the caller's perspective: a failed history insert
// never fails ticket processing.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record inserts one classification outcome.
func (r *HistoryRepository) Record(ctx context.Context, ticketID uuid.UUID, analysis domain.TicketAnalysis) error {
	query := `
		INSERT INTO classification_history (ticket_id, category, sentiment)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.ExecContext(ctx, query, ticketID, analysis.Category, analysis.Sentiment); err != nil {
		return domain.WrapRepositoryError(err, "failed to record classification for ticket %s", ticketID)
	}
	return nil
}

// GetStats aggregates recorded classifications by category and sentiment.
func (r *HistoryRepository) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByCategory:  make(map[string]int),
		BySentiment: make(map[string]int),
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT category, sentiment, COUNT(*)
		FROM classification_history
		GROUP BY category, sentiment
	`)
	if err != nil {
		return nil, domain.WrapRepositoryError(err, "failed to load classification stats")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var category, sentiment string
		var count int
		if scanErr := rows.Scan(&category, &sentiment, &count); scanErr != nil {
			return nil, domain.WrapRepositoryError(scanErr, "failed to scan classification stats")
		}
		stats.TotalProcessed += count
		stats.ByCategory[category] += count
		stats.BySentiment[sentiment] += count
	}
	if err = rows.Err(); err != nil {
		return nil, domain.WrapRepositoryError(err, "error iterating classification stats")
	}

	return stats, nil
}
