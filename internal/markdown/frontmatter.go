package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-insights/pkg/interfaces"
)

// ParseFrontMatter extracts optional YAML metadata and the Markdown body from
// the provided report source. Reports without frontmatter pass through with a
// zero-valued envelope and the body untouched.
func ParseFrontMatter(source []byte) (interfaces.ReportFrontMatter, []byte, error) {
	var meta interfaces.ReportFrontMatter

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.ReportFrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return meta, body, nil
}

// DocumentTitle resolves a display title for the report: the frontmatter
// title when present, otherwise the first level-1 heading in the tree, else
// the first heading of any level, else empty.
func DocumentTitle(meta interfaces.ReportFrontMatter, tree *interfaces.BlockTree) string {
	if title := strings.TrimSpace(meta.Title); title != "" {
		return title
	}
	if tree == nil {
		return ""
	}
	first := ""
	for _, block := range tree.Blocks {
		heading, ok := block.(interfaces.Heading)
		if !ok {
			continue
		}
		if heading.Level == 1 {
			return strings.TrimSpace(heading.Text)
		}
		if first == "" {
			first = strings.TrimSpace(heading.Text)
		}
	}
	return first
}
