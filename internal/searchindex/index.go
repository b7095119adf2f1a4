package searchindex

import (
	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// posting holds the documents containing one term.
// ids is in first-seen order; counts maps document ID to term frequency.
type posting struct {
	ids    []string
	counts map[string]int
}

// Index is an immutable inverted index over a document slice.
type Index struct {
	docs  []domain.SearchDocument
	terms map[string]*posting
	order []string
}

// Build tokenizes every document's title, description and content and
// returns the resulting index. The documents are retained verbatim and in
// order. Build never fails; an empty slice yields an empty index.
func Build(docs []domain.SearchDocument) *Index {
	idx := &Index{
		docs:  make([]domain.SearchDocument, len(docs)),
		terms: make(map[string]*posting),
	}
	copy(idx.docs, docs)

	for i := range idx.docs {
		doc := &idx.docs[i]
		for _, token := range Tokenize(indexText(doc)) {
			p, ok := idx.terms[token]
			if !ok {
				p = &posting{counts: make(map[string]int)}
				idx.terms[token] = p
				idx.order = append(idx.order, token)
			}
			if _, seen := p.counts[doc.ID]; !seen {
				p.ids = append(p.ids, doc.ID)
			}
			p.counts[doc.ID]++
		}
	}

	return idx
}

func indexText(doc *domain.SearchDocument) string {
	return doc.Title + " " + doc.Description + " " + doc.Content
}

// Documents returns the indexed documents in corpus order.
// The returned slice must not be modified.
func (idx *Index) Documents() []domain.SearchDocument {
	return idx.docs
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.docs)
}

// TermCount returns the number of distinct indexed terms.
func (idx *Index) TermCount() int {
	return len(idx.order)
}

// Terms returns the indexed terms in insertion order.
func (idx *Index) Terms() []string {
	out := make([]string, len(idx.order))
	copy(out, idx.order)
	return out
}

// Postings returns the IDs of documents containing term, in first-seen order.
func (idx *Index) Postings(term string) []string {
	p, ok := idx.terms[term]
	if !ok {
		return nil
	}
	out := make([]string, len(p.ids))
	copy(out, p.ids)
	return out
}

// Document looks up a document by ID. With duplicate IDs the last one wins.
func (idx *Index) Document(id string) (domain.SearchDocument, bool) {
	for i := len(idx.docs) - 1; i >= 0; i-- {
		if idx.docs[i].ID == id {
			return idx.docs[i], true
		}
	}
	return domain.SearchDocument{}, false
}
