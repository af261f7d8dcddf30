package services

import (
	"strings"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driving"
	"github.com/avocatech/juricite/internal/legal"
	"github.com/avocatech/juricite/internal/logger"
)

// Ensure CitationService implements the interface.
var _ driving.CitationService = (*CitationService)(nil)

// CitationService is the No Source No Claim gate: it checks generated
// text against the sources the generator was given and flags claim
// sentences nothing backs. It is a lexical-overlap heuristic, kept
// deliberately simple so every flag is explainable; semantic
// entailment is out of scope on purpose.
type CitationService struct {
	minOverlapWords int
	minWordLength   int
}

// NewCitationService creates a citation validator. Non-positive
// thresholds fall back to the engine defaults.
func NewCitationService(settings domain.CitationSettings) *CitationService {
	defaults := domain.DefaultEngineSettings().Citation
	if settings.MinOverlapWords <= 0 {
		settings.MinOverlapWords = defaults.MinOverlapWords
	}
	if settings.MinWordLength <= 0 {
		settings.MinWordLength = defaults.MinWordLength
	}
	return &CitationService{
		minOverlapWords: settings.MinOverlapWords,
		minWordLength:   settings.MinWordLength,
	}
}

// Validate classifies each sentence of text as claim or non-claim and
// checks every claim's lexical overlap against the supplied sources.
// It never fails: malformed input degrades to treat-as-claim and
// flag-as-uncited, since this sits on the response path of every
// generation and failing open beats dropping the answer.
func (s *CitationService) Validate(text string, sources []domain.Source) domain.CitationReport {
	sentences := legal.SplitSentences(text)

	report := domain.CitationReport{
		IsValid:       true,
		SentenceCount: len(sentences),
	}
	if len(sentences) == 0 {
		return report
	}

	// Lowercase concatenation of everything the generator was shown.
	var corpus string
	if len(sources) > 0 {
		var b strings.Builder
		for _, src := range sources {
			b.WriteString(strings.ToLower(src.ChunkText))
			b.WriteString(" ")
		}
		corpus = b.String()
	}

	for _, sentence := range sentences {
		if !legal.IsClaim(sentence) {
			continue
		}
		report.ClaimCount++

		// No sources at all: nothing can back any claim.
		if corpus == "" {
			report.UncitedClaims = append(report.UncitedClaims, sentence)
			continue
		}

		overlap := 0
		for _, word := range legal.SignificantWords(sentence, s.minWordLength) {
			if strings.Contains(corpus, word) {
				overlap++
			}
		}
		if overlap < s.minOverlapWords {
			report.UncitedClaims = append(report.UncitedClaims, sentence)
		}
	}

	report.IsValid = len(report.UncitedClaims) == 0
	if !report.IsValid {
		logger.Debug("citation gate flagged %d of %d claims", len(report.UncitedClaims), report.ClaimCount)
	}
	return report
}
