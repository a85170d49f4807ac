// Package domain contains the core domain models for the ticket triage service.
package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category is the support-ticket category taxonomy.
type Category string

// Category values use the production taxonomy wire format.
const (
	CategoryTechnical  Category = "Tecnico"
	CategoryBilling    Category = "Facturacion"
	CategoryCommercial Category = "Comercial"
)

// Categories lists all valid categories in declaration order.
func Categories() []Category {
	return []Category{CategoryTechnical, CategoryBilling, CategoryCommercial}
}

// ParseCategory converts a string into a Category, case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// Sentiment is the support-ticket sentiment taxonomy.
type Sentiment string

// Sentiment values use the production taxonomy wire format.
const (
	SentimentPositive Sentiment = "Positivo"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negativo"
)

// Sentiments lists all valid sentiments in declaration order.
func Sentiments() []Sentiment {
	return []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}
}

// ParseSentiment converts a string into a Sentiment, case-insensitively.
func ParseSentiment(s string) (Sentiment, error) {
	for _, v := range Sentiments() {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown sentiment: %q", s)
}

// TicketAnalysis is the typed result of classifying one ticket description.
// Both fields are always set on a constructed analysis.
type TicketAnalysis struct {
	Category  Category  `json:"category"`
	Sentiment Sentiment `json:"sentiment"`
}

// Ticket represents a support ticket row as stored by the repository.
type Ticket struct {
	ID          uuid.UUID  `db:"id"          json:"id"`
	Description string     `db:"description" json:"description"`
	Category    *Category  `db:"category"    json:"category,omitempty"`
	Sentiment   *Sentiment `db:"sentiment"   json:"sentiment,omitempty"`
	Processed   bool       `db:"processed"   json:"processed"`
}
