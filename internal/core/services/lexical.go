package services

import (
	"strings"

	"github.com/avocatech/juricite/internal/core/domain"
)

// LexicalScorer computes BM25-style keyword relevance, independent of
// any vector signal. Stateless; safe for concurrent use.
type LexicalScorer struct {
	k1        float64
	avgDocLen float64
}

// NewLexicalScorer creates a scorer with the given saturation constant
// and length-normalisation reference. Non-positive values fall back to
// the engine defaults.
func NewLexicalScorer(settings domain.LexicalSettings) *LexicalScorer {
	defaults := domain.DefaultEngineSettings().Lexical
	if settings.K1 <= 0 {
		settings.K1 = defaults.K1
	}
	if settings.AvgDocLen <= 0 {
		settings.AvgDocLen = defaults.AvgDocLen
	}
	return &LexicalScorer{k1: settings.K1, avgDocLen: settings.AvgDocLen}
}

// Score returns the keyword relevance of text for query, in [0, ~1].
//
// Per query term: tf / (tf + k1 * docLen/avgDocLen), a saturating,
// length-normalised frequency. One occurrence in a short document
// scores much higher than one occurrence in a long one. The per-term
// scores are averaged over all query terms; terms absent from the
// text contribute 0. Matching is case-insensitive and whole-word.
func (s *LexicalScorer) Score(text, query string) float64 {
	queryTerms := strings.Fields(strings.ToLower(query))
	if len(queryTerms) == 0 {
		return 0
	}

	docTokens := strings.Fields(strings.ToLower(text))
	docLen := float64(len(docTokens))
	if docLen == 0 {
		return 0
	}

	counts := make(map[string]int, len(docTokens))
	for _, tok := range docTokens {
		counts[strings.Trim(tok, ".,;:!?()[]«»\"'")]++
	}

	lengthNorm := s.k1 * docLen / s.avgDocLen

	var total float64
	for _, term := range queryTerms {
		tf := float64(counts[term])
		if tf == 0 {
			continue
		}
		total += tf / (tf + lengthNorm)
	}

	return total / float64(len(queryTerms))
}
