package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"github.com/jonesrussell/ticket-triage/internal/config"
	"github.com/jonesrussell/ticket-triage/internal/domain"
	"github.com/jonesrussell/ticket-triage/internal/logger"
)

const llmMaxTokens = 256

// LLMClassifier is the primary classifier: one self-contained generative
// model round trip per call, constrained by the system prompt to emit the
// analysis shape with the enumerated values only.
type LLMClassifier struct {
	client  anthropic.Client
	model   anthropic.Model
	limiter *rate.Limiter
	logger  logger.Logger
}

// llmAnalysis is the structured response contract for the model output.
type llmAnalysis struct {
	Category  string `json:"category"`
	Sentiment string `json:"sentiment"`
}

// NewLLMClassifier creates the primary classifier. It fails with
// ExternalServiceError when no API key is configured; the chain wiring
// catches this and proceeds without a primary.
func NewLLMClassifier(cfg config.LLMConfig, log logger.Logger) (*LLMClassifier, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.NewExternalServiceError("ANTHROPIC_API_KEY is required for the primary classifier")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(cfg.MaxRetries),
	)

	return &LLMClassifier{
		client:  client,
		model:   anthropic.Model(cfg.Model),
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.RPS),
		logger:  log,
	}, nil
}

// Classify sends the ticket text to the model and parses the structured
// response. Transport and parse failures map to ExternalServiceError.
func (c *LLMClassifier) Classify(ctx context.Context, text string) (domain.TicketAnalysis, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.TicketAnalysis{}, domain.WrapExternalServiceError(err, "LLM rate limit wait aborted")
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: llmMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("Ticket:\n" + text)),
		},
	})
	if err != nil {
		return domain.TicketAnalysis{}, domain.WrapExternalServiceError(err, "LLM provider failed during classification")
	}

	responseText := ""
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	if responseText == "" {
		return domain.TicketAnalysis{}, domain.NewExternalServiceError("no text content in LLM response")
	}

	analysis, err := parseAnalysisResponse(responseText)
	if err != nil {
		return domain.TicketAnalysis{}, err
	}

	c.logger.Debug("LLM classified ticket",
		logger.String("category", string(analysis.Category)),
		logger.String("sentiment", string(analysis.Sentiment)),
		logger.Int64("tokens_in", message.Usage.InputTokens),
		logger.Int64("tokens_out", message.Usage.OutputTokens),
	)

	return analysis, nil
}

// systemPrompt restates the allowed taxonomy values and the JSON-only
// format contract.
func systemPrompt() string {
	return fmt.Sprintf(`Eres un asistente de soporte. Debes clasificar tickets con precision.
Reglas:
- category SOLO puede ser: %s
- sentiment SOLO puede ser: %s
- Responde unicamente con JSON (sin markdown):
{"category": "...", "sentiment": "..."}`,
		joinCategories(), joinSentiments())
}

func joinCategories() string {
	values := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		values = append(values, string(c))
	}
	return strings.Join(values, ", ")
}

func joinSentiments() string {
	values := make([]string, 0, len(domain.Sentiments()))
	for _, s := range domain.Sentiments() {
		values = append(values, string(s))
	}
	return strings.Join(values, ", ")
}

// parseAnalysisResponse strips markdown fences some models wrap around JSON
// and validates the payload against the closed enumerations.
func parseAnalysisResponse(responseText string) (domain.TicketAnalysis, error) {
	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var raw llmAnalysis
	if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
		return domain.TicketAnalysis{}, domain.WrapExternalServiceError(err, "LLM returned an invalid structured response")
	}

	category, err := domain.ParseCategory(raw.Category)
	if err != nil {
		return domain.TicketAnalysis{}, domain.WrapExternalServiceError(err, "LLM returned an invalid structured response")
	}
	sentiment, err := domain.ParseSentiment(raw.Sentiment)
	if err != nil {
		return domain.TicketAnalysis{}, domain.WrapExternalServiceError(err, "LLM returned an invalid structured response")
	}

	return domain.TicketAnalysis{Category: category, Sentiment: sentiment}, nil
}
