package searchindex

import (
	"sort"
	"strings"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// Suggestion and related-content defaults.
const (
	DefaultSuggestLimit = 5
	DefaultRelatedLimit = 3
	MinSuggestLength    = 2
)

// Related-content weights.
const (
	sameCategoryWeight = 5
	sameTypeWeight     = 3
	sharedTagWeight    = 8
)

// Suggest returns up to limit completions for a partial query.
// For each document in order it collects the title words starting with
// the query (when the title contains it) and then the tags containing it.
// Duplicates keep their first position. Queries shorter than
// MinSuggestLength yield nothing.
func Suggest(docs []domain.SearchDocument, query string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	if len(query) < MinSuggestLength {
		return []string{}
	}

	lowerQuery := strings.ToLower(query)
	seen := make(map[string]struct{})
	out := make([]string, 0, limit)
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for i := range docs {
		doc := &docs[i]
		if strings.Contains(strings.ToLower(doc.Title), lowerQuery) {
			for _, word := range strings.Fields(doc.Title) {
				if strings.HasPrefix(strings.ToLower(word), lowerQuery) {
					add(word)
				}
			}
		}
		for _, tag := range doc.Tags {
			if strings.Contains(strings.ToLower(tag), lowerQuery) {
				add(tag)
			}
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Related scores every other document against target by shared metadata:
// same category, same type and each shared tag. Results are sorted by
// score (ties keep corpus order), truncated to limit and stripped of
// zero scores.
func Related(docs []domain.SearchDocument, target domain.SearchDocument, limit int) []domain.RelatedResult {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	targetTags := make(map[string]struct{}, len(target.Tags))
	for _, t := range target.Tags {
		targetTags[t] = struct{}{}
	}

	scored := make([]domain.RelatedResult, 0, len(docs))
	for i := range docs {
		doc := docs[i]
		if doc.ID == target.ID {
			continue
		}
		score := 0
		if doc.Category != "" && doc.Category == target.Category {
			score += sameCategoryWeight
		}
		if doc.Type == target.Type {
			score += sameTypeWeight
		}
		for _, t := range doc.Tags {
			if _, ok := targetTags[t]; ok {
				score += sharedTagWeight
			}
		}
		scored = append(scored, domain.RelatedResult{Document: doc, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	out := scored[:0]
	for _, r := range scored {
		if r.Score > 0 {
			out = append(out, r)
		}
	}
	return out
}
