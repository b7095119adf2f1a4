package searchindex

import "strings"

// MinTokenLength is the shortest token kept by Tokenize.
const MinTokenLength = 3

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {}, "it": {}, "its": {},
	"of": {}, "on": {}, "that": {}, "the": {}, "to": {}, "was": {}, "will": {}, "with": {},
	"this": {}, "but": {}, "they": {}, "have": {}, "had": {}, "what": {}, "when": {},
	"where": {}, "who": {}, "which": {}, "why": {}, "how": {},
}

// IsStopWord reports whether token is excluded from indexing.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// isWordRune matches the ASCII word class [A-Za-z0-9_].
func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// Tokenize lowercases text, splits it on every non-word character and
// drops tokens shorter than MinTokenLength as well as stop words.
// Order and duplicates are preserved.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) < MinTokenLength || IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
