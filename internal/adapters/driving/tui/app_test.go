package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avocatech/juricite/internal/adapters/driving/tui/messages"
	"github.com/avocatech/juricite/internal/core/domain"
)

// mockLegalSearchService implements driving.LegalSearchService for testing.
type mockLegalSearchService struct {
	results []domain.SearchResult
	err     error
}

func (m *mockLegalSearchService) Search(
	_ context.Context,
	_ string,
	_ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return m.results, m.err
}

func (m *mockLegalSearchService) ExtractEntities(_ string) []domain.LegalEntity {
	return nil
}

func (m *mockLegalSearchService) BuildContextChunks(_ []domain.SearchResult) []domain.ContextChunk {
	return nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(
		&Ports{Search: &mockLegalSearchService{}},
		domain.SearchOptions{TenantID: "t1"},
	)
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

func TestNewApp(t *testing.T) {
	t.Run("missing search service returns error", func(t *testing.T) {
		app, err := NewApp(&Ports{}, domain.SearchOptions{TenantID: "t1"})
		require.Error(t, err)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("valid ports creates app", func(t *testing.T) {
		app, err := NewApp(
			&Ports{Search: &mockLegalSearchService{}},
			domain.SearchOptions{TenantID: "t1"},
		)
		require.NoError(t, err)
		require.NotNil(t, app)
		assert.Equal(t, messages.ViewSearch, app.CurrentView())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("empty ports return error", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingSearchService)
	})

	t.Run("search service is sufficient", func(t *testing.T) {
		ports := &Ports{Search: &mockLegalSearchService{}}
		assert.NoError(t, ports.Validate())
	})
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(
		&Ports{Search: &mockLegalSearchService{}},
		domain.SearchOptions{TenantID: "t1"},
	)
	require.NoError(t, err)
	assert.False(t, app.Ready())

	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(*App)
	assert.True(t, app.Ready())
}

func TestApp_ResultSelectedOpensDetail(t *testing.T) {
	app := newTestApp(t)

	result := domain.SearchResult{DocumentID: "doc-1", Content: "texte de la pièce"}
	model, _ := app.Update(messages.ResultSelected{Result: result})
	app = model.(*App)

	assert.Equal(t, messages.ViewDetail, app.CurrentView())
	assert.Contains(t, app.View(), "doc-1")
}

func TestApp_ViewChangedReturnsToSearch(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.ResultSelected{Result: domain.SearchResult{DocumentID: "doc-1"}})
	app = model.(*App)
	require.Equal(t, messages.ViewDetail, app.CurrentView())

	model, _ = app.Update(messages.ViewChanged{View: messages.ViewSearch})
	app = model.(*App)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_EscInInputModeQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_HelpView(t *testing.T) {
	app := newTestApp(t)

	// Enter results mode first so "?" is not typed into the input.
	model, _ := app.Update(messages.SearchCompleted{
		Results: []domain.SearchResult{{DocumentID: "doc-1", Content: "texte"}},
	})
	app = model.(*App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	app = model.(*App)
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Help")

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_SearchErrorSurfaced(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.SearchCompleted{Err: assert.AnError})
	app = model.(*App)

	assert.Error(t, app.Err())
}
