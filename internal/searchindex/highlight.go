package searchindex

import (
	"regexp"
	"sort"
	"strings"
)

// Default markers wrap matches in a styled HTML mark element.
const (
	DefaultOpenMarker  = `<mark class="bg-yellow-200 dark:bg-yellow-800">`
	DefaultCloseMarker = `</mark>`
)

// Highlighter wraps whole-word query term occurrences in markers.
type Highlighter struct {
	Open  string
	Close string
}

// DefaultHighlighter uses the HTML mark markers.
var DefaultHighlighter = Highlighter{Open: DefaultOpenMarker, Close: DefaultCloseMarker}

// Highlight marks query terms in text with the default HTML markers.
func Highlight(text, query string) string {
	return DefaultHighlighter.Highlight(text, query)
}

// Highlight wraps every case-insensitive whole-word occurrence of a query
// term in text. All terms are matched in a single pass, so inserted
// markers are never themselves matched. The original casing is preserved.
func (h Highlighter) Highlight(text, query string) string {
	re := termPattern(query)
	if re == nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return h.Open + m + h.Close
	})
}

// Matches reports whether text contains any whole-word query term.
func Matches(text, query string) bool {
	re := termPattern(query)
	return re != nil && re.MatchString(text)
}

// termPattern compiles the alternation of the query's distinct terms,
// longest first. It returns nil when the query has no terms.
func termPattern(query string) *regexp.Regexp {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, regexp.QuoteMeta(t))
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return len(terms[i]) > len(terms[j])
	})

	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(terms, "|") + `)\b`)
}
