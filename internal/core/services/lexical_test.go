package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avocatech/juricite/internal/core/domain"
)

func newTestScorer() *LexicalScorer {
	return NewLexicalScorer(domain.DefaultEngineSettings().Lexical)
}

func TestLexicalScorer_MatchingTermsScorePositive(t *testing.T) {
	s := newTestScorer()

	score := s.Score("Le contrat de travail est valide", "contrat travail")
	assert.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestLexicalScorer_NoOverlapScoresZero(t *testing.T) {
	s := newTestScorer()

	assert.Equal(t, 0.0, s.Score("Le chat dort", "contrat travail"))
}

func TestLexicalScorer_EmptyQuery(t *testing.T) {
	s := newTestScorer()

	assert.Equal(t, 0.0, s.Score("du texte quelconque", ""))
	assert.Equal(t, 0.0, s.Score("du texte quelconque", "   "))
}

func TestLexicalScorer_EmptyText(t *testing.T) {
	s := newTestScorer()

	assert.Equal(t, 0.0, s.Score("", "contrat"))
}

func TestLexicalScorer_CaseInsensitiveWholeWord(t *testing.T) {
	s := newTestScorer()

	assert.Greater(t, s.Score("CONTRAT signé hier", "contrat"), 0.0)
	// "contrats" is a different word; whole-word matching gives no credit.
	assert.Equal(t, 0.0, s.Score("les contrats multiples", "contrat"))
}

func TestLexicalScorer_LengthNormalisation(t *testing.T) {
	s := newTestScorer()

	short := s.Score("préavis obligatoire", "préavis")

	long := "clause "
	for i := 0; i < 400; i++ {
		long += "mot "
	}
	long += "préavis"

	assert.Greater(t, short, s.Score(long, "préavis"),
		"one occurrence in a short document must outscore one in a long one")
}

func TestLexicalScorer_SaturatingFrequency(t *testing.T) {
	s := newTestScorer()

	once := s.Score("préavis dû", "préavis")
	many := s.Score("préavis préavis préavis préavis dû", "préavis")

	assert.Greater(t, many, once)
	// Saturation: quadrupling the term must not quadruple the score.
	assert.Less(t, many, once*4)
}

func TestLexicalScorer_AbsentTermsDiluteAverage(t *testing.T) {
	s := newTestScorer()

	both := s.Score("contrat de travail", "contrat travail")
	half := s.Score("contrat seulement ici", "contrat travail")

	assert.Greater(t, both, half)
}

func TestLexicalScorer_PunctuationStripped(t *testing.T) {
	s := newTestScorer()

	assert.Greater(t, s.Score("le contrat, signé hier.", "contrat"), 0.0)
}
