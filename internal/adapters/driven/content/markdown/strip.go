package markdown

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	codeBlockRe    = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe   = regexp.MustCompile("`([^`]+)`")
	imageRe        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkRe         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingRe      = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	blockquoteRe   = regexp.MustCompile(`(?m)^>[ \t]*`)
	hrRe           = regexp.MustCompile(`(?m)^[-*_]{3,}[ \t]*$`)
	listMarkerRe   = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	numberedListRe = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`)
	mdxStatementRe = regexp.MustCompile(`(?m)^(?:import|export)\s.*$`)
	htmlTagRe      = regexp.MustCompile(`</?[A-Za-z][^>]*>`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown reduces Markdown and MDX to plain text.
// Inline code keeps its text; fenced blocks are dropped.
func stripMarkdown(content string) string {
	content = codeBlockRe.ReplaceAllString(content, "")
	content = mdxStatementRe.ReplaceAllString(content, "")
	content = htmlTagRe.ReplaceAllString(content, " ")
	content = inlineCodeRe.ReplaceAllString(content, "$1")
	content = imageRe.ReplaceAllString(content, "")
	content = linkRe.ReplaceAllString(content, "$1")
	content = headingRe.ReplaceAllString(content, "")
	content = hrRe.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")

	content = blockquoteRe.ReplaceAllString(content, "")
	content = listMarkerRe.ReplaceAllString(content, "")
	content = numberedListRe.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "*", "")
	content = multiNewlineRe.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// extractTitle returns the first H1 heading, or a title derived from the
// file name.
func extractTitle(body, path string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ReplaceAll(name, "-", " ")
}
