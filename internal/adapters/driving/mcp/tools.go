package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avocatech/juricite/internal/core/domain"
)

// SearchInput is the input schema for the legal_search tool.
type SearchInput struct {
	Query    string            `json:"query" jsonschema:"the search query"`
	TenantID string            `json:"tenant_id" jsonschema:"law firm identifier; results never cross tenants"`
	CaseID   string            `json:"case_id,omitempty" jsonschema:"restrict results to one case file"`
	Limit    int               `json:"limit,omitempty" jsonschema:"maximum number of results (default 10)"`
	Filters  map[string]string `json:"filters,omitempty" jsonschema:"exact-match payload filters"`
}

// SearchOutput is the output schema for the legal_search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput is a single source-attributed search result.
type SearchResultOutput struct {
	DocumentID      string   `json:"document_id,omitempty"`
	EvidenceLinkID  string   `json:"evidence_link_id,omitempty"`
	CaseID          string   `json:"case_id,omitempty"`
	PageNumber      int      `json:"page_number,omitempty"`
	Score           float64  `json:"score"`
	Content         string   `json:"content"`
	Highlights      []string `json:"highlights,omitempty"`
	RelatedArticles []string `json:"related_articles,omitempty"`
}

// ValidateInput is the input schema for the validate_citations tool.
type ValidateInput struct {
	Text    string          `json:"text" jsonschema:"the generated text to check"`
	Sources []domain.Source `json:"sources" jsonschema:"the sources the generator was shown"`
}

// EntitiesInput is the input schema for the extract_entities tool.
type EntitiesInput struct {
	Text string `json:"text" jsonschema:"free text to scan for legal references"`
}

// EntitiesOutput is the output schema for the extract_entities tool.
type EntitiesOutput struct {
	Entities []EntityOutput `json:"entities"`
	Count    int            `json:"count"`
}

// EntityOutput is a single recognised legal reference.
type EntityOutput struct {
	Type       string  `json:"type"`
	Text       string  `json:"text"`
	Normalized string  `json:"normalized"`
	Confidence float64 `json:"confidence"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "legal_search",
		Description: "Search a tenant's indexed legal documents. Every result carries the identifiers needed to cite it.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_citations",
		Description: "Check generated text against its sources: every assertive sentence must be backed by the supplied source texts.",
	}, s.handleValidate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_entities",
		Description: "Recognise statute articles, laws and court decisions in free text.",
	}, s.handleEntities)
}

// handleSearch handles the legal_search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{
		TenantID: input.TenantID,
		CaseID:   input.CaseID,
		TopK:     input.Limit,
		Filters:  input.Filters,
	}

	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID:      results[i].DocumentID,
			EvidenceLinkID:  results[i].EvidenceLinkID,
			CaseID:          results[i].CaseID,
			PageNumber:      results[i].PageNumber,
			Score:           results[i].Score,
			Content:         results[i].Content,
			Highlights:      results[i].Highlights,
			RelatedArticles: results[i].RelatedArticles,
		}
	}

	return nil, output, nil
}

// handleValidate handles the validate_citations tool invocation.
func (s *Server) handleValidate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, domain.CitationReport, error) {
	return nil, s.ports.Citation.Validate(input.Text, input.Sources), nil
}

// handleEntities handles the extract_entities tool invocation.
func (s *Server) handleEntities(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input EntitiesInput,
) (*mcp.CallToolResult, EntitiesOutput, error) {
	entities := s.ports.Search.ExtractEntities(input.Text)

	output := EntitiesOutput{
		Entities: make([]EntityOutput, len(entities)),
		Count:    len(entities),
	}
	for i, entity := range entities {
		output.Entities[i] = EntityOutput{
			Type:       entity.Type.String(),
			Text:       entity.Text,
			Normalized: entity.Normalized,
			Confidence: entity.Confidence,
		}
	}

	return nil, output, nil
}
