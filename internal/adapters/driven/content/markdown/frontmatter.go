package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter is the YAML header of a content file.
type frontmatter struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Excerpt     string     `yaml:"excerpt"`
	Date        string     `yaml:"date"`
	PublishedAt string     `yaml:"publishedAt"`
	Category    string     `yaml:"category"`
	Tags        stringList `yaml:"tags"`
	Type        string     `yaml:"type"`
	Draft       bool       `yaml:"draft"`
}

// stringList accepts either a YAML sequence or a comma separated scalar.
type stringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *stringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var out []string
		for _, part := range strings.Split(node.Value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*l = out
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("line %d: tags must be a list or a string", node.Line)
	}
}

var fence = []byte("---")

// splitFrontmatter separates a leading "---" delimited YAML block from the body.
// Files without one return a zero frontmatter and the whole content.
func splitFrontmatter(data []byte) (frontmatter, string, error) {
	var fm frontmatter

	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if !bytes.HasPrefix(data, fence) {
		return fm, string(data), nil
	}

	rest := data[len(fence):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return fm, string(data), nil
	}
	rest = rest[nl+1:]

	var header, body []byte
	if bytes.HasPrefix(rest, fence) {
		header, body = nil, rest[len(fence):]
	} else {
		end := bytes.Index(rest, []byte("\n---"))
		if end < 0 {
			return fm, "", fmt.Errorf("unterminated frontmatter")
		}
		header, body = rest[:end], rest[end+len("\n---"):]
	}

	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = nil
	}

	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	return fm, string(body), nil
}
