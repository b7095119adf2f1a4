package searchindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "whitespace only", input: "   \t\n", want: []string{}},
		{name: "punctuation only", input: "!!! ... ???", want: []string{}},
		{name: "lowercases", input: "Threat DETECTION", want: []string{"threat", "detection"}},
		{name: "drops short tokens", input: "AI ML security", want: []string{"security"}},
		{name: "drops stop words", input: "the security of the platform", want: []string{"security", "platform"}},
		{name: "punctuation splits", input: "red-teaming, prompt_injection!", want: []string{"red", "teaming", "prompt_injection"}},
		{name: "keeps duplicates", input: "scan scan scan", want: []string{"scan", "scan", "scan"}},
		{name: "digits are word characters", input: "owasp 2024 top10", want: []string{"owasp", "2024", "top10"}},
		{name: "non-ascii letters separate", input: "café résumé", want: []string{"caf", "sum"}},
		{name: "apostrophes split", input: "what's new", want: []string{"new"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestIsStopWord(t *testing.T) {
	for _, w := range []string{"the", "which", "have", "will", "this"} {
		assert.True(t, IsStopWord(w), w)
	}
	assert.False(t, IsStopWord("security"))
	assert.False(t, IsStopWord("The"))
}
