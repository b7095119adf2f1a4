package searchindex

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// Ranking constants.
const (
	FuzzyWeight      = 0.7
	TitleBoost       = 2.0
	DescriptionBoost = 1.5
	RecentBoost      = 1.2
	SemiRecentBoost  = 1.1
	RecentWindow     = 30 * 24 * time.Hour
	SemiRecentWindow = 90 * 24 * time.Hour
)

// tfidf returns frequency(term, docID) * ln(N / df(term)), or 0 when the
// term does not occur in the document.
func (idx *Index) tfidf(term, docID string) float64 {
	p, ok := idx.terms[term]
	if !ok {
		return 0
	}
	tf := p.counts[docID]
	df := len(p.counts)
	if tf == 0 || df == 0 {
		return 0
	}
	return float64(tf) * math.Log(float64(len(idx.docs))/float64(df))
}

// Search ranks documents against query using the current time for
// recency boosts.
func (idx *Index) Search(query string, opts domain.SearchOptions) []domain.SearchResult {
	return idx.SearchAt(query, opts, time.Now())
}

// SearchAt ranks documents against query, measuring document age from now.
// It returns an empty, non-nil slice when nothing matches.
func (idx *Index) SearchAt(query string, opts domain.SearchOptions, now time.Time) []domain.SearchResult {
	tokens := Tokenize(query)
	if len(tokens) == 0 || len(idx.docs) == 0 {
		return []domain.SearchResult{}
	}

	scores := make(map[string]float64)
	for _, token := range tokens {
		if p, ok := idx.terms[token]; ok {
			for _, id := range p.ids {
				scores[id] += idx.tfidf(token, id)
			}
		}

		if opts.DisableFuzzy {
			continue
		}
		for _, term := range idx.order {
			if !strings.Contains(term, token) && !strings.Contains(token, term) {
				continue
			}
			sim := similarity(token, term)
			for _, id := range idx.terms[term].ids {
				scores[id] += idx.tfidf(term, id) * sim * FuzzyWeight
			}
		}
	}

	lowerQuery := strings.ToLower(query)
	results := make([]domain.SearchResult, 0, len(scores))
	for i := range idx.docs {
		doc := idx.docs[i]
		score, ok := scores[doc.ID]
		if !ok {
			continue
		}
		if opts.Type != "" && doc.Type != opts.Type {
			continue
		}
		results = append(results, domain.SearchResult{
			Document: doc,
			Score:    boost(score, doc, lowerQuery, now),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit := opts.EffectiveLimit(); len(results) > limit {
		results = results[:limit]
	}
	return results
}

func similarity(a, b string) float64 {
	la, lb := len(a), len(b)
	if la > lb {
		la, lb = lb, la
	}
	return float64(la) / float64(lb)
}

// boost applies the title, description and recency multipliers in that order.
func boost(score float64, doc domain.SearchDocument, lowerQuery string, now time.Time) float64 {
	if strings.Contains(strings.ToLower(doc.Title), lowerQuery) {
		score *= TitleBoost
	}
	if strings.Contains(strings.ToLower(doc.Description), lowerQuery) {
		score *= DescriptionBoost
	}
	if published, ok := doc.PublishedAt(); ok {
		age := now.Sub(published)
		switch {
		case age < RecentWindow:
			score *= RecentBoost
		case age < SemiRecentWindow:
			score *= SemiRecentBoost
		}
	}
	return score
}
