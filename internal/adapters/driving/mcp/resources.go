package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avocatech/juricite/internal/legal"
)

// uriScheme is the custom URI scheme for engine resources.
const uriScheme = "juricite://"

// registerResources registers the static lookup tables as read-only
// resources. They are reference data, not tenant data, so no scoping
// applies.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "glossary",
		Name:        "glossary",
		Description: "French-to-English legal term glossary used for query translation",
		MIMEType:    "application/json",
	}, s.handleGlossaryResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "synonyms",
		Name:        "synonyms",
		Description: "Legal root terms and the synonyms used for query expansion",
		MIMEType:    "application/json",
	}, s.handleSynonymsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "related-articles",
		Name:        "related-articles",
		Description: "Statute articles commonly cited together",
		MIMEType:    "application/json",
	}, s.handleRelatedArticlesResource)
}

func (s *Server) handleGlossaryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, legal.GlossaryFR())
}

func (s *Server) handleSynonymsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, legal.SynonymTable())
}

func (s *Server) handleRelatedArticlesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, legal.RelatedArticlesTable())
}

// jsonResource marshals a lookup table into a resource result.
func jsonResource(uri string, table any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
