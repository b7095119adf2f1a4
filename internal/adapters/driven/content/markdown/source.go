// Package markdown indexes a directory of Markdown and MDX content.
//
// The top-level directory decides the document type:
//
//	blog/        blog
//	learning/    learn
//	whitepapers/ whitepaper
//	docs/        docs
//	anything     page
//
// YAML frontmatter supplies title, description, date, category and tags.
package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
	"github.com/perfecxion/sitesearch/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// Name is the source name used in logs and corpus reports.
const Name = "markdown"

// section maps a top-level content directory to a type and URL prefix.
type section struct {
	docType   domain.DocumentType
	urlPrefix string
}

var sections = map[string]section{
	"blog":         {domain.DocumentTypeBlog, "/blog"},
	"learning":     {domain.DocumentTypeLearn, "/learn"},
	"learn":        {domain.DocumentTypeLearn, "/learn"},
	"whitepapers":  {domain.DocumentTypeWhitepaper, "/content/white-papers"},
	"white-papers": {domain.DocumentTypeWhitepaper, "/content/white-papers"},
	"docs":         {domain.DocumentTypeDocs, "/docs"},
	"knowledge":    {domain.DocumentTypeDocs, "/knowledge"},
}

// Source walks a content directory.
type Source struct {
	root string
}

// New returns a source rooted at dir.
func New(dir string) *Source {
	return &Source{root: dir}
}

// Name returns "markdown".
func (s *Source) Name() string {
	return Name
}

// Root returns the content directory.
func (s *Source) Root() string {
	return s.root
}

// Documents walks the content directory in lexical order. Drafts are left
// out and files that fail to parse are logged and skipped.
func (s *Source) Documents(ctx context.Context) ([]domain.SearchDocument, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s: not a directory: %w", s.root, domain.ErrInvalidInput)
	}

	docs := []domain.SearchDocument{}
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path != s.root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isContentFile(path) {
			return nil
		}

		doc, ok, err := s.parseFile(path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			return nil
		}
		if ok {
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.root, err)
	}

	logger.Debug("Loaded %d markdown documents from %s", len(docs), s.root)
	return docs, nil
}

// parseFile builds the document for one file. ok is false for drafts.
func (s *Source) parseFile(path string) (domain.SearchDocument, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SearchDocument{}, false, err
	}

	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return domain.SearchDocument{}, false, err
	}
	if fm.Draft {
		return domain.SearchDocument{}, false, nil
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return domain.SearchDocument{}, false, err
	}
	rel = filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))

	doc := documentFor(rel)

	if fm.Type != "" {
		t, err := domain.ParseDocumentType(fm.Type)
		if err != nil {
			return domain.SearchDocument{}, false, err
		}
		doc.Type = t
	}

	doc.Title = fm.Title
	if doc.Title == "" {
		doc.Title = extractTitle(body, path)
	}
	doc.Description = fm.Description
	if doc.Description == "" {
		doc.Description = fm.Excerpt
	}
	doc.Date = fm.Date
	if doc.Date == "" {
		doc.Date = fm.PublishedAt
	}
	if fm.Category != "" {
		doc.Category = fm.Category
	}
	if len(fm.Tags) > 0 {
		doc.Tags = []string(fm.Tags)
	}
	doc.Content = stripMarkdown(body)

	return doc, true, nil
}

// documentFor derives ID, URL, type and category from a slash separated
// path relative to the root, without extension.
func documentFor(rel string) domain.SearchDocument {
	parts := strings.Split(rel, "/")

	sec, known := sections[parts[0]]
	if !known || len(parts) == 1 {
		return domain.SearchDocument{
			ID:   "page-" + strings.Join(parts, "-"),
			URL:  "/" + rel,
			Type: domain.DocumentTypePage,
		}
	}

	rest := parts[1:]
	doc := domain.SearchDocument{
		ID:   string(sec.docType) + "-" + strings.Join(rest, "-"),
		URL:  sec.urlPrefix + "/" + strings.Join(rest, "/"),
		Type: sec.docType,
	}
	if len(rest) > 1 {
		doc.Category = rest[0]
	}
	return doc
}

func isContentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".mdx":
		return true
	default:
		return false
	}
}

// isHidden reports whether a file or directory name starts with a dot.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
