// Package classifier implements ticket classification: a primary structured
// model classifier with an ordered chain of degrading fallbacks.
package classifier

import (
	"context"

	"github.com/jonesrussell/ticket-triage/internal/domain"
)

// Classifier maps raw ticket text to a typed (category, sentiment) analysis.
type Classifier interface {
	Classify(ctx context.Context, text string) (domain.TicketAnalysis, error)
}

// Entry is a named classifier handle. The name labels which chain candidate
// succeeded or failed in logs; it is never persisted.
type Entry struct {
	Name       string
	Classifier Classifier
}
