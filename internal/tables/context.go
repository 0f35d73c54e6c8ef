package tables

import (
	"strings"

	"github.com/goliatone/go-insights/pkg/interfaces"
)

// ContextFor scans backward from the table's block index until a heading of
// any level is found and returns its trimmed, lower-cased text. Only the
// nearest preceding heading counts; heading hierarchy is ignored, so deeply
// nested subsections inherit the nearest local heading rather than a
// breadcrumb path. Returns empty string when the document start is reached
// with no heading.
func ContextFor(tree *interfaces.BlockTree, blockIndex int) string {
	if tree == nil || blockIndex <= 0 || blockIndex > len(tree.Blocks) {
		return ""
	}
	for i := blockIndex - 1; i >= 0; i-- {
		if heading, ok := tree.Blocks[i].(interfaces.Heading); ok {
			return strings.ToLower(strings.TrimSpace(heading.Text))
		}
	}
	return ""
}
