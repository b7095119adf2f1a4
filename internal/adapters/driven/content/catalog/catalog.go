// Package catalog indexes the product catalog.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// Name is the source name used in logs and corpus reports.
const Name = "catalog"

//go:embed catalog.toml
var defaultCatalog []byte

type catalogFile struct {
	Products []domain.Product `toml:"products"`
}

// Source produces one product document per catalog entry.
type Source struct {
	path string
}

// New returns a source reading the catalog at path.
// An empty path uses the built-in catalog.
func New(path string) *Source {
	return &Source{path: path}
}

// Name returns "catalog".
func (s *Source) Name() string {
	return Name
}

// Documents decodes the catalog and maps every product to a document.
func (s *Source) Documents(ctx context.Context) ([]domain.SearchDocument, error) {
	data := defaultCatalog
	if s.path != "" {
		raw, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = raw
	}

	products, err := Parse(data)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.SearchDocument, 0, len(products))
	for i := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docs = append(docs, ProductDocument(products[i]))
	}
	return docs, nil
}

// Parse decodes a TOML catalog. Unknown fields are rejected.
func Parse(data []byte) ([]domain.Product, error) {
	var file catalogFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	for i, p := range file.Products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("product %d: %w", i, domain.ErrMissingID)
		}
	}
	return file.Products, nil
}

// ProductDocument maps a product to its search document.
// Content is features, benefits and use cases joined by spaces.
func ProductDocument(p domain.Product) domain.SearchDocument {
	benefits := make([]string, 0, len(p.Benefits))
	for _, b := range p.Benefits {
		benefits = append(benefits, strings.TrimSpace(b.Title+" "+b.Description))
	}

	content := strings.Join(p.Features, " ") + " " +
		strings.Join(benefits, " ") + " " +
		strings.Join(p.UseCases, " ")

	var tags []string
	if len(p.Features) > 0 {
		tags = append([]string(nil), p.Features...)
	}

	return domain.SearchDocument{
		ID:          "product-" + p.ID,
		Title:       p.Name,
		Description: p.Description,
		Content:     content,
		URL:         "/products/" + p.ID,
		Type:        domain.DocumentTypeProduct,
		Category:    p.Category,
		Tags:        tags,
	}
}
