package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/jonesrussell/ticket-triage/internal/database"
	"github.com/jonesrussell/ticket-triage/internal/domain"
)

func TestHistoryRepository_Record(t *testing.T) {
	ticketID := uuid.New()
	analysis := domain.TicketAnalysis{
		Category:  domain.CategoryTechnical,
		Sentiment: domain.SentimentNeutral,
	}

	t.Run("inserts one row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := database.NewHistoryRepository(db)

		mock.ExpectExec("INSERT INTO classification_history").
			WithArgs(ticketID, analysis.Category, analysis.Sentiment).
			WillReturnResult(sqlmock.NewResult(1, 1))

		if err := repo.Record(context.Background(), ticketID, analysis); err != nil {
			t.Errorf("Record returned error: %v", err)
		}
	})

	t.Run("insert failure is RepositoryError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := database.NewHistoryRepository(db)

		mock.ExpectExec("INSERT INTO classification_history").
			WithArgs(ticketID, analysis.Category, analysis.Sentiment).
			WillReturnError(errors.New("table locked"))

		err := repo.Record(context.Background(), ticketID, analysis)

		var repoErr *domain.RepositoryError
		if !errors.As(err, &repoErr) {
			t.Errorf("error = %v, want RepositoryError", err)
		}
	})
}

func TestHistoryRepository_GetStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewHistoryRepository(db)

	rows := sqlmock.NewRows([]string{"category", "sentiment", "count"}).
		AddRow("Tecnico", "Negativo", 4).
		AddRow("Tecnico", "Neutral", 2).
		AddRow("Facturacion", "Negativo", 3)
	mock.ExpectQuery("SELECT category, sentiment, COUNT").WillReturnRows(rows)

	stats, err := repo.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats returned error: %v", err)
	}

	if stats.TotalProcessed != 9 {
		t.Errorf("TotalProcessed = %d, want 9", stats.TotalProcessed)
	}
	if stats.ByCategory["Tecnico"] != 6 {
		t.Errorf("ByCategory[Tecnico] = %d, want 6", stats.ByCategory["Tecnico"])
	}
	if stats.BySentiment["Negativo"] != 7 {
		t.Errorf("BySentiment[Negativo] = %d, want 7", stats.BySentiment["Negativo"])
	}
}
