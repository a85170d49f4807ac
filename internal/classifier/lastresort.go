package classifier

import (
	"context"

	"github.com/jonesrussell/ticket-triage/internal/domain"
)

// LastResortClassifier is the guaranteed terminal chain candidate: keyword
// category plus a fixed default sentiment. It never fails for non-empty
// input; empty input is rejected by the chain before it is reached.
type LastResortClassifier struct {
	categorizer      *KeywordCategorizer
	defaultSentiment domain.Sentiment
}

// NewLastResortClassifier creates a last-resort classifier. An empty
// defaultSentiment falls back to Neutral.
func NewLastResortClassifier(categorizer *KeywordCategorizer, defaultSentiment domain.Sentiment) *LastResortClassifier {
	if defaultSentiment == "" {
		defaultSentiment = domain.SentimentNeutral
	}
	return &LastResortClassifier{
		categorizer:      categorizer,
		defaultSentiment: defaultSentiment,
	}
}

// Classify returns a deterministic analysis for any non-empty input.
func (l *LastResortClassifier) Classify(_ context.Context, text string) (domain.TicketAnalysis, error) {
	return domain.TicketAnalysis{
		Category:  l.categorizer.Categorize(text),
		Sentiment: l.defaultSentiment,
	}, nil
}
