package classifier

import (
	"context"
	"strings"
	"sync"

	"github.com/jonesrussell/ticket-triage/internal/config"
	"github.com/jonesrussell/ticket-triage/internal/domain"
	"github.com/jonesrussell/ticket-triage/internal/logger"
	"github.com/jonesrussell/ticket-triage/internal/sentimentml"
)

// sentimentLabels normalizes sidecar model labels into the sentiment
// taxonomy. Both semantic labels and index labels (label_0..label_2) are
// supported, since the label head depends on the deployed model.
var sentimentLabels = map[string]domain.Sentiment{
	"negative": domain.SentimentNegative,
	"neutral":  domain.SentimentNeutral,
	"positive": domain.SentimentPositive,
	"label_0":  domain.SentimentNegative,
	"label_1":  domain.SentimentNeutral,
	"label_2":  domain.SentimentPositive,
}

// SentimentAnalyzer is the sidecar capability consumed by the sentiment
// model classifier.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (*sentimentml.AnalyzeResponse, error)
}

// The sidecar client is process-wide shared state: construction is guarded
// so concurrent first requests do not build duplicate clients, and every
// classifier instance reuses the same connection pool.
var (
	sharedAnalyzerOnce sync.Once
	sharedAnalyzer     *sentimentml.Client
	sharedAnalyzerErr  error
)

func sharedSentimentAnalyzer(cfg config.SentimentMLConfig) (*sentimentml.Client, error) {
	sharedAnalyzerOnce.Do(func() {
		if strings.TrimSpace(cfg.URL) == "" {
			sharedAnalyzerErr = domain.NewExternalServiceError("sentiment model URL is not configured")
			return
		}
		sharedAnalyzer = sentimentml.NewClient(cfg.URL, cfg.Timeout)
	})
	return sharedAnalyzer, sharedAnalyzerErr
}

// SentimentModelClassifier classifies tickets using the keyword categorizer
// for category and the sentiment model sidecar for sentiment.
type SentimentModelClassifier struct {
	categorizer *KeywordCategorizer
	analyzer    SentimentAnalyzer
	logger      logger.Logger
}

// NewSentimentModelClassifier creates a classifier backed by the given
// analyzer. Use NewSharedSentimentModelClassifier for production wiring.
func NewSentimentModelClassifier(categorizer *KeywordCategorizer, analyzer SentimentAnalyzer, log logger.Logger) *SentimentModelClassifier {
	return &SentimentModelClassifier{
		categorizer: categorizer,
		analyzer:    analyzer,
		logger:      log,
	}
}

// NewSharedSentimentModelClassifier creates a classifier backed by the
// process-wide sidecar client, constructing it on first use.
func NewSharedSentimentModelClassifier(cfg config.SentimentMLConfig, categorizer *KeywordCategorizer, log logger.Logger) (*SentimentModelClassifier, error) {
	analyzer, err := sharedSentimentAnalyzer(cfg)
	if err != nil {
		return nil, err
	}
	return NewSentimentModelClassifier(categorizer, analyzer, log), nil
}

// Classify returns a full analysis. All sidecar failure modes map to
// ExternalServiceError so the fallback chain can advance.
func (s *SentimentModelClassifier) Classify(ctx context.Context, text string) (domain.TicketAnalysis, error) {
	result, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		return domain.TicketAnalysis{}, domain.WrapExternalServiceError(err, "sentiment model inference failed")
	}
	if result == nil || strings.TrimSpace(result.Label) == "" {
		return domain.TicketAnalysis{}, domain.NewExternalServiceError("sentiment model returned no results")
	}

	sentiment, err := normalizeSentimentLabel(result.Label)
	if err != nil {
		return domain.TicketAnalysis{}, err
	}

	s.logger.Debug("sentiment model classified ticket",
		logger.String("label", result.Label),
		logger.Float64("score", result.Score),
		logger.String("model_version", result.ModelVersion),
	)

	return domain.TicketAnalysis{
		Category:  s.categorizer.Categorize(text),
		Sentiment: sentiment,
	}, nil
}

func normalizeSentimentLabel(label string) (domain.Sentiment, error) {
	sentiment, ok := sentimentLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", domain.NewExternalServiceError("sentiment model returned unknown label: %s", label)
	}
	return sentiment, nil
}
