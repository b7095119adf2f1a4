package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for site search resources.
	uriScheme = "sitesearch://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource describing the active index.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index",
		Name:        "index",
		Description: "Statistics of the active search index",
		MIMEType:    "application/json",
	}, s.handleIndexResource)

	// Template for document content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Title, metadata and content of an indexed document",
		MIMEType:    "text/markdown",
	}, s.handleDocumentResource)
}

// handleIndexResource returns the active index statistics.
func (s *Server) handleIndexResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var stats domain.IndexStats
	if s.ports.Index != nil {
		stats = s.ports.Index.Stats()
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling index stats: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentResource returns one document rendered as Markdown.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract documentId from URI: sitesearch://documents/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Search.Document(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     renderDocument(doc),
		}},
	}, nil
}

// renderDocument formats a document as a Markdown page with a metadata list.
func renderDocument(doc *domain.SearchDocument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "- URL: %s\n", doc.URL)
	fmt.Fprintf(&b, "- Type: %s\n", doc.Type)
	if doc.Category != "" {
		fmt.Fprintf(&b, "- Category: %s\n", doc.Category)
	}
	if len(doc.Tags) > 0 {
		fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(doc.Tags, ", "))
	}
	if doc.Date != "" {
		fmt.Fprintf(&b, "- Date: %s\n", doc.Date)
	}
	if doc.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", doc.Description)
	}
	if doc.Content != "" {
		fmt.Fprintf(&b, "\n%s\n", doc.Content)
	}
	return b.String()
}

// extractDocumentID extracts the document ID from a URI like sitesearch://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
