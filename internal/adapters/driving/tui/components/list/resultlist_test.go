package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avocatech/juricite/internal/core/domain"
)

func testResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			DocumentID: "doc-1",
			CaseID:     "case-1",
			PageNumber: 3,
			Score:      0.95,
			Content:    "Le délai de préavis est de deux mois.",
		},
		{
			EvidenceLinkID: "ev-7",
			Score:          0.80,
			Content:        "Clause de non-concurrence limitée à deux ans.",
			Highlights:     []string{"non-concurrence"},
		},
		{
			DocumentID:      "doc-2",
			Score:           0.60,
			Content:         "Texte sans rapport.",
			RelatedArticles: []string{"L.1234-1", "art. 700"},
		},
	}
}

func TestResultList_Navigation(t *testing.T) {
	r := NewResultList(nil)
	r.SetResults(testResults())

	assert.Equal(t, 0, r.Selected())

	r.MoveDown()
	r.MoveDown()
	assert.Equal(t, 2, r.Selected())

	// Does not move past the end
	r.MoveDown()
	assert.Equal(t, 2, r.Selected())

	r.MoveUp()
	assert.Equal(t, 1, r.Selected())
}

func TestResultList_SelectedResult(t *testing.T) {
	r := NewResultList(nil)
	assert.Nil(t, r.SelectedResult())

	r.SetResults(testResults())
	selected := r.SelectedResult()
	require.NotNil(t, selected)
	assert.Equal(t, "doc-1", selected.DocumentID)
}

func TestResultList_SetResultsResetsSelection(t *testing.T) {
	r := NewResultList(nil)
	r.SetResults(testResults())
	r.MoveDown()
	require.Equal(t, 1, r.Selected())

	r.SetResults(testResults()[:1])
	assert.Equal(t, 0, r.Selected())
}

func TestResultList_View(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(120, 20)
	r.SetResults(testResults())

	out := r.View()
	assert.Contains(t, out, "Results (3)")
	assert.Contains(t, out, "doc-1")
	assert.Contains(t, out, "case case-1")
	assert.Contains(t, out, "p.3")
}

func TestResultList_ViewEmpty(t *testing.T) {
	r := NewResultList(nil)
	assert.Contains(t, r.View(), "No results")
}

func TestSourceLabel(t *testing.T) {
	tests := []struct {
		name     string
		result   domain.SearchResult
		expected string
	}{
		{
			name:     "document with case and page",
			result:   domain.SearchResult{DocumentID: "doc-1", CaseID: "case-1", PageNumber: 3},
			expected: "doc-1  case case-1  p.3",
		},
		{
			name:     "evidence link only",
			result:   domain.SearchResult{EvidenceLinkID: "ev-7"},
			expected: "ev-7",
		},
		{
			name:     "no identifiers",
			result:   domain.SearchResult{},
			expected: "(untraced)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sourceLabel(&tt.result))
		})
	}
}
