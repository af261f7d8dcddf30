package legal

import (
	"regexp"
	"strings"

	"github.com/avocatech/juricite/internal/core/domain"
)

// Per-family confidence values. Article patterns are precise; the
// case-citation patterns are looser and score accordingly.
const (
	confidenceArticle       = 0.95
	confidenceLaw           = 0.85
	confidenceCaseReference = 0.75
)

// Entity pattern families, applied in order. A span may match several
// families; cross-family overlaps are all kept. Within one family,
// duplicate matched spans are collapsed to a single entity.
var (
	// article 1382, art. 700, article L.1234-5, articles 700 et 701
	articlePattern = regexp.MustCompile(`(?i)\barticles?\s+([LRD]\.?\s?)?(\d+(?:[-.]\d+)*)\b|\bart\.\s*([LRD]\.?\s?)?(\d+(?:[-.]\d+)*)\b`)

	// loi du 6 août 2015, loi n° 78-17, décret n°2019-1333, ordonnance du 10 février 2016
	lawPattern = regexp.MustCompile(`(?i)\b(loi|décret|ordonnance)\s+(n°\s?\d+(?:[-.]\d+)*|du\s+\d{1,2}(?:er)?\s+\p{L}+\s+\d{4})`)

	// Cass. civ. 1re, 12 mai 2021 / Cass. soc., 3 juin 2020 / CE, 10 juillet 2020 / CA Paris, 5 mars 2019
	casePattern = regexp.MustCompile(`(?i)\b(Cass\.\s?\p{L}+\.?(?:\s?\d+\p{L}*)?|CE|CA\s\p{L}+|Cons\.\s?const\.),?\s+\d{1,2}(?:er)?\s+\p{L}+\s+\d{4}`)
)

// articleNumber extracts the bare number from an article match.
var articleNumber = regexp.MustCompile(`([LRD]\.?\s?)?(\d+(?:[-.]\d+)*)`)

// ExtractEntities runs the ordered pattern families over text and
// returns every recognised legal reference. Entities are derived
// values; nothing here is persisted.
func ExtractEntities(text string) []domain.LegalEntity {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var entities []domain.LegalEntity

	entities = append(entities, extractFamily(text, articlePattern, domain.EntityTypeArticle, confidenceArticle, normaliseArticle)...)
	entities = append(entities, extractFamily(text, lawPattern, domain.EntityTypeLaw, confidenceLaw, normaliseLaw)...)
	entities = append(entities, extractFamily(text, casePattern, domain.EntityTypeCaseReference, confidenceCaseReference, normaliseCase)...)

	return entities
}

// extractFamily matches one pattern family, deduplicating by exact
// matched span within the family.
func extractFamily(
	text string,
	pattern *regexp.Regexp,
	entityType domain.EntityType,
	confidence float64,
	normalise func(string) string,
) []domain.LegalEntity {
	matches := pattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	entities := make([]domain.LegalEntity, 0, len(matches))

	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		entities = append(entities, domain.LegalEntity{
			Type:       entityType,
			Text:       m,
			Normalized: normalise(m),
			Confidence: confidence,
		})
	}

	return entities
}

// normaliseArticle reduces any article spelling to "art. <number>",
// keeping code-prefix letters: "Article L.1234-5" -> "art. L.1234-5".
func normaliseArticle(match string) string {
	sub := articleNumber.FindStringSubmatch(match)
	if sub == nil {
		return strings.ToLower(strings.TrimSpace(match))
	}
	prefix := strings.ReplaceAll(strings.TrimSpace(sub[1]), " ", "")
	if prefix != "" && !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	return "art. " + strings.ToUpper(prefix) + sub[2]
}

// normaliseLaw lowercases and collapses whitespace.
func normaliseLaw(match string) string {
	return strings.Join(strings.Fields(strings.ToLower(match)), " ")
}

// normaliseCase collapses whitespace, keeping the court abbreviation
// casing as written.
func normaliseCase(match string) string {
	return strings.Join(strings.Fields(match), " ")
}

// ArticleNumbers returns the normalised numbers of every article
// entity in the list, e.g. "1382", "L.1234-5". Used for the
// related-article lookup.
func ArticleNumbers(entities []domain.LegalEntity) []string {
	var numbers []string
	for _, e := range entities {
		if e.Type != domain.EntityTypeArticle {
			continue
		}
		numbers = append(numbers, strings.TrimPrefix(e.Normalized, "art. "))
	}
	return numbers
}
