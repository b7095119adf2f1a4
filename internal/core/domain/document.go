package domain

import (
	"strings"
	"time"
)

// DocumentType classifies a SearchDocument.
type DocumentType string

// Known document types.
const (
	DocumentTypePage       DocumentType = "page"
	DocumentTypeBlog       DocumentType = "blog"
	DocumentTypeDocs       DocumentType = "docs"
	DocumentTypeProduct    DocumentType = "product"
	DocumentTypeWhitepaper DocumentType = "whitepaper"
	DocumentTypeLearn      DocumentType = "learn"
)

// DocumentTypes lists every known type in display order.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypePage,
		DocumentTypeBlog,
		DocumentTypeDocs,
		DocumentTypeProduct,
		DocumentTypeWhitepaper,
		DocumentTypeLearn,
	}
}

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypePage, DocumentTypeBlog, DocumentTypeDocs,
		DocumentTypeProduct, DocumentTypeWhitepaper, DocumentTypeLearn:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// ParseDocumentType converts a user-supplied string into a DocumentType.
// An empty string yields the empty type (no filter).
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(strings.ToLower(strings.TrimSpace(s)))
	if t == "" || t.IsValid() {
		return t, nil
	}
	return "", ErrUnsupportedType
}

// SearchDocument is one unit of site content eligible for search.
// Documents are retained verbatim by the index and returned as-is in results.
type SearchDocument struct {
	// ID is unique within an index.
	ID string `json:"id"`

	// Title is the display title. Matches here receive the strongest boost.
	Title string `json:"title"`

	// Description is a short summary.
	Description string `json:"description"`

	// Content is the full body text.
	Content string `json:"content"`

	// URL is the site-relative location of the document.
	URL string `json:"url"`

	// Type is the document classification used for filtering.
	Type DocumentType `json:"type"`

	// Category is an optional grouping label.
	Category string `json:"category,omitempty"`

	// Tags are optional labels.
	Tags []string `json:"tags,omitempty"`

	// Date is an optional publication date (ISO-8601 date or timestamp).
	Date string `json:"date,omitempty"`
}

// dateLayouts are the accepted Date encodings, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// PublishedAt parses Date. The second return value is false when Date
// is empty or not a recognised ISO-8601 form.
func (d SearchDocument) PublishedAt() (time.Time, bool) {
	s := strings.TrimSpace(d.Date)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Validate checks the invariants enforced at corpus-build time.
func (d SearchDocument) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return ErrMissingID
	}
	if d.Type != "" && !d.Type.IsValid() {
		return ErrUnsupportedType
	}
	return nil
}
