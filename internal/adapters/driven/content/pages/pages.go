// Package pages indexes the fixed site pages.
package pages

import (
	"context"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// Name is the source name used in logs and corpus reports.
const Name = "pages"

// Defaults returns the built-in site pages.
func Defaults() []domain.StaticPage {
	return []domain.StaticPage{
		{
			ID:          "home",
			Title:       "perfecXion.ai - AI Security and Compliance Solutions",
			Description: "Enterprise-grade AI security platform protecting your AI infrastructure",
			Content:     "AI security compliance threat detection vulnerability scanning red teaming",
			URL:         "/",
		},
		{
			ID:          "about",
			Title:       "About perfecXion.ai",
			Description: "Learn about our mission to secure AI systems worldwide",
			Content:     "company mission vision team leadership AI security experts",
			URL:         "/about",
		},
		{
			ID:          "contact",
			Title:       "Contact Us",
			Description: "Get in touch with our AI security experts",
			Content:     "contact sales support demo consultation enterprise",
			URL:         "/contact",
		},
	}
}

// Source produces a page document per static page.
type Source struct {
	pages []domain.StaticPage
}

// New returns a source over pages, or Defaults when none are given.
func New(pages ...domain.StaticPage) *Source {
	if len(pages) == 0 {
		pages = Defaults()
	}
	return &Source{pages: pages}
}

// Name returns "pages".
func (s *Source) Name() string {
	return Name
}

// Documents returns the pages in order.
func (s *Source) Documents(_ context.Context) ([]domain.SearchDocument, error) {
	docs := make([]domain.SearchDocument, 0, len(s.pages))
	for _, p := range s.pages {
		docs = append(docs, domain.SearchDocument{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Content:     p.Content,
			URL:         p.URL,
			Type:        domain.DocumentTypePage,
		})
	}
	return docs, nil
}
