package markdown

import (
	"bytes"
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-insights/pkg/interfaces"
)

// ErrTreeBuild signals that the Markdown source could not be converted into a
// block tree at all. Callers must treat it as fatal for the whole extraction
// call and fall back to rendering the raw text.
var ErrTreeBuild = errors.New("markdown: block tree construction failed")

// TreeAdapter implements interfaces.TreeParser using the goldmark engine with
// the GFM table extension enabled. The adapter is stateless so callers can
// reuse a single instance across documents without locking.
type TreeAdapter struct {
	engine goldmark.Markdown
}

var _ interfaces.TreeParser = (*TreeAdapter)(nil)

// NewTreeAdapter constructs the adapter with GFM extensions so pipe tables,
// task lists, and strikethrough survive parsing.
func NewTreeAdapter() *TreeAdapter {
	return &TreeAdapter{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// ParseTree converts raw Markdown into the ordered block tree consumed by the
// extraction pipeline. Inline formatting is flattened to plain text; only the
// block-level structure (headings, paragraphs, lists, tables) is preserved.
func (p *TreeAdapter) ParseTree(source []byte) (*interfaces.BlockTree, error) {
	reader := text.NewReader(source)
	doc := p.engine.Parser().Parse(reader)
	if doc == nil {
		return nil, ErrTreeBuild
	}

	tree := &interfaces.BlockTree{}
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			tree.Blocks = append(tree.Blocks, interfaces.Heading{
				Level: n.Level,
				Text:  nodeText(n, source),
			})
		case *ast.Paragraph:
			if txt := nodeText(n, source); txt != "" {
				tree.Blocks = append(tree.Blocks, interfaces.Paragraph{Text: txt})
			}
		case *ast.TextBlock:
			if txt := nodeText(n, source); txt != "" {
				tree.Blocks = append(tree.Blocks, interfaces.Paragraph{Text: txt})
			}
		case *ast.List:
			if list := convertList(n, source); len(list.Items) > 0 {
				tree.Blocks = append(tree.Blocks, list)
			}
		case *east.Table:
			tree.Blocks = append(tree.Blocks, convertTable(n, source))
		}
	}
	return tree, nil
}

func convertList(node *ast.List, source []byte) interfaces.List {
	list := interfaces.List{Ordered: node.IsOrdered()}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if item, ok := child.(*ast.ListItem); ok {
			if txt := nodeText(item, source); txt != "" {
				list.Items = append(list.Items, txt)
			}
		}
	}
	return list
}

func convertTable(node *east.Table, source []byte) interfaces.Table {
	table := interfaces.Table{}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			table.Rows = append(table.Rows, convertRow(row, source, true))
		case *east.TableRow:
			table.Rows = append(table.Rows, convertRow(row, source, false))
		}
	}
	return table
}

func convertRow(row ast.Node, source []byte, header bool) interfaces.TableRow {
	out := interfaces.TableRow{Header: header}
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if c, ok := cell.(*east.TableCell); ok {
			out.Cells = append(out.Cells, interfaces.TableCell{
				Header: header,
				Text:   nodeText(c, source),
			})
		}
	}
	return out
}

// nodeText flattens the inline content of a node into trimmed plain text.
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			switch t := child.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(source))
				if t.SoftLineBreak() || t.HardLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(t.Value)
			default:
				walk(child)
			}
		}
	}
	walk(node)
	return strings.TrimSpace(buf.String())
}
