package classifier

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jonesrussell/ticket-triage/internal/config"
	"github.com/jonesrussell/ticket-triage/internal/domain"
	"github.com/jonesrussell/ticket-triage/internal/logger"
	"github.com/jonesrussell/ticket-triage/internal/telemetry"
)

// Candidate names used in logs and metrics.
const (
	primaryName      = "llm"
	sentimentMLName  = "sentiment_ml"
	lastResortName   = "last_resort"
	outcomeSucceeded = "success"
	outcomeFailed    = "error"
)

// FallbackChain walks an ordered candidate list until one classifier
// succeeds. Later candidates are strictly lower-trust fallbacks, never
// alternatives to compare against: the first success wins.
type FallbackChain struct {
	candidates []Entry
	logger     logger.Logger
	telemetry  *telemetry.Provider
}

// NewFallbackChain builds a chain from an optional primary and the ordered
// fallbacks. A nil primary means the chain starts at the first fallback.
func NewFallbackChain(primary Classifier, fallbacks []Entry, log logger.Logger, tel *telemetry.Provider) *FallbackChain {
	candidates := make([]Entry, 0, len(fallbacks)+1)
	if primary != nil {
		candidates = append(candidates, Entry{Name: primaryName, Classifier: primary})
	}
	candidates = append(candidates, fallbacks...)

	return &FallbackChain{
		candidates: candidates,
		logger:     log,
		telemetry:  tel,
	}
}

// NewChain wires the standard chain: primary LLM classifier (if
// constructible), sentiment model fallback, last resort. Construction
// failures of the primary or the sentiment fallback degrade the chain
// instead of failing the service.
func NewChain(cfg *config.Config, log logger.Logger, tel *telemetry.Provider) *FallbackChain {
	categorizer := NewKeywordCategorizer()

	var primary Classifier
	llm, err := NewLLMClassifier(cfg.LLM, log)
	if err != nil {
		log.Warn("primary classifier unavailable, chain starts at fallbacks", logger.Error(err))
	} else {
		primary = llm
	}

	fallbacks := make([]Entry, 0, 2)
	sentiment, err := NewSharedSentimentModelClassifier(cfg.SentimentML, categorizer, log)
	if err != nil {
		log.Warn("sentiment model fallback unavailable", logger.Error(err))
	} else {
		fallbacks = append(fallbacks, Entry{Name: sentimentMLName, Classifier: sentiment})
	}

	lastResort := NewLastResortClassifier(categorizer, domain.Sentiment(cfg.Classification.DefaultSentiment))
	fallbacks = append(fallbacks, Entry{Name: lastResortName, Classifier: lastResort})

	return NewFallbackChain(primary, fallbacks, log, tel)
}

// Classify walks the chain for one ticket description.
//
// Empty or whitespace-only input fails with ValidationError before any
// candidate runs. A candidate's ExternalServiceError advances the chain
// with a warning; any other candidate error is treated as a defect but the
// chain still advances. Exhaustion is a terminal ExternalServiceError:
// unreachable while the last resort keeps its cannot-fail contract, but
// kept as a defensive invariant rather than dead code.
func (c *FallbackChain) Classify(ctx context.Context, text string) (domain.TicketAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return domain.TicketAnalysis{}, domain.NewValidationError("description is empty")
	}
	cleaned := strings.TrimSpace(text)

	ctx, span := c.telemetry.Tracer.Start(ctx, "chain.classify")
	defer span.End()
	start := time.Now()

	for _, entry := range c.candidates {
		if ctx.Err() != nil {
			return domain.TicketAnalysis{}, ctx.Err()
		}

		analysis, err := entry.Classifier.Classify(ctx, cleaned)
		if err == nil {
			c.telemetry.Metrics.ClassificationsTotal.WithLabelValues(entry.Name, outcomeSucceeded).Inc()
			c.telemetry.Metrics.ClassificationDuration.Observe(time.Since(start).Seconds())
			if entry.Name != primaryName {
				c.logger.Info("classified ticket via fallback",
					logger.String("classifier", entry.Name),
					logger.String("category", string(analysis.Category)),
					logger.String("sentiment", string(analysis.Sentiment)),
				)
			}
			return analysis, nil
		}

		c.telemetry.Metrics.ClassificationsTotal.WithLabelValues(entry.Name, outcomeFailed).Inc()
		c.telemetry.Metrics.FallbackAdvances.Inc()

		var svcErr *domain.ExternalServiceError
		if errors.As(err, &svcErr) {
			c.logger.Warn("classifier failed, advancing to next candidate",
				logger.String("classifier", entry.Name),
				logger.Error(err),
			)
			continue
		}

		// Not a recognized service failure: an integration defect. The
		// chain must stay resilient to any single stage, so advance anyway.
		c.logger.Error("classifier failed unexpectedly, advancing to next candidate",
			logger.String("classifier", entry.Name),
			logger.Error(err),
		)
	}

	return domain.TicketAnalysis{}, domain.NewExternalServiceError("all classifiers failed")
}
