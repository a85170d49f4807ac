package classifier

import (
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jonesrussell/ticket-triage/internal/domain"
)

// Keyword sets are bilingual (Spanish and English) to match the tickets the
// service receives. Substring matching is intentional: "instal" covers
// instalar, instalacion, installation.
var billingKeywords = []string{
	"factura",
	"facturacion",
	"cobro",
	"pago",
	"invoice",
	"billing",
	"refund",
	"reembolso",
}

var technicalKeywords = []string{
	"error",
	"fallo",
	"falla",
	"bug",
	"crash",
	"no funciona",
	"no responde",
	"cae",
	"lento",
	"lentitud",
	"instal",
	"login",
	"acceso",
}

// KeywordCategorizer infers a ticket category from keyword matches. It is
// deterministic and never fails: billing keywords win over technical ones,
// and text matching neither set is Comercial.
type KeywordCategorizer struct {
	billing   *ahocorasick.Matcher
	technical *ahocorasick.Matcher
}

// NewKeywordCategorizer builds the keyword matchers.
func NewKeywordCategorizer() *KeywordCategorizer {
	return &KeywordCategorizer{
		billing:   ahocorasick.NewStringMatcher(billingKeywords),
		technical: ahocorasick.NewStringMatcher(technicalKeywords),
	}
}

// Categorize returns the category for the given ticket text.
func (k *KeywordCategorizer) Categorize(text string) domain.Category {
	normalized := normalizeText(text)

	if len(k.billing.Match([]byte(normalized))) > 0 {
		return domain.CategoryBilling
	}
	if len(k.technical.Match([]byte(normalized))) > 0 {
		return domain.CategoryTechnical
	}
	return domain.CategoryCommercial
}

// normalizeText lower-cases and strips diacritics so "Facturación" matches
// the unaccented keyword set.
func normalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}
