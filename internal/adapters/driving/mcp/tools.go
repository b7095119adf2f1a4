package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

const defaultSearchLimit = 10

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find documents"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Type  string `json:"type,omitempty" jsonschema:"only return documents of this type: page, blog, docs, product, whitepaper or learn"`
	Fuzzy *bool  `json:"fuzzy,omitempty" jsonschema:"match query terms inside longer indexed terms (default true)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID  string   `json:"document_id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Score       float64  `json:"score"`
	Highlights  []string `json:"highlights,omitempty"`
}

// SuggestInput is the input schema for the suggest tool.
type SuggestInput struct {
	Prefix string `json:"prefix" jsonschema:"partial query of at least two characters"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of suggestions (default 5)"`
}

// SuggestOutput is the output schema for the suggest tool.
type SuggestOutput struct {
	Suggestions []string `json:"suggestions"`
}

// RelatedInput is the input schema for the related tool.
type RelatedInput struct {
	DocumentID string `json:"document_id" jsonschema:"id of the document to find related content for"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of related documents (default 3)"`
}

// RelatedOutput is the output schema for the related tool.
type RelatedOutput struct {
	Results []RelatedResultOutput `json:"results"`
}

// RelatedResultOutput is one related document.
type RelatedResultOutput struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Score      int    `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search across all indexed site content",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest",
		Description: "Suggest title words and tags completing a partial query",
	}, s.handleSuggest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "related",
		Description: "Find documents sharing category, type or tags with a document",
	}, s.handleRelated)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	docType, err := domain.ParseDocumentType(input.Type)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("type %q: %w", input.Type, err)
	}

	opts := domain.SearchOptions{Limit: limit, Type: docType}
	if input.Fuzzy != nil {
		opts.DisableFuzzy = !*input.Fuzzy
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
		doc := &results[i].Document
		output.Results[i] = SearchResultOutput{
			DocumentID:  doc.ID,
			Title:       doc.Title,
			URL:         doc.URL,
			Type:        doc.Type.String(),
			Description: doc.Description,
			Score:       results[i].Score,
			Highlights:  results[i].Highlights,
		}
	}

	return nil, output, nil
}

// handleSuggest handles the suggest tool invocation.
func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	suggestions, err := s.ports.Search.Suggest(ctx, input.Prefix, input.Limit)
	if err != nil {
		return nil, SuggestOutput{}, err
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	return nil, SuggestOutput{Suggestions: suggestions}, nil
}

// handleRelated handles the related tool invocation.
func (s *Server) handleRelated(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RelatedInput,
) (*mcp.CallToolResult, RelatedOutput, error) {
	related, err := s.ports.Search.Related(ctx, input.DocumentID, input.Limit)
	if err != nil {
		return nil, RelatedOutput{}, err
	}

	output := RelatedOutput{Results: make([]RelatedResultOutput, len(related))}
	for i := range related {
		output.Results[i] = RelatedResultOutput{
			DocumentID: related[i].Document.ID,
			Title:      related[i].Document.Title,
			URL:        related[i].Document.URL,
			Score:      related[i].Score,
		}
	}
	return nil, output, nil
}
