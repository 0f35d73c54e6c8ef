package interfaces

import "time"

// BlockTree is the structured representation of a Markdown report body:
// headings, paragraphs, lists, and tables in document order. The extraction
// pipeline depends only on this shape, never on a specific Markdown engine,
// so hosts can substitute their own converter as long as element ordering
// and cell addressability are preserved.
type BlockTree struct {
	Blocks []Block
}

// Block is a single block-level element. Exactly one of the concrete types
// below implements it.
type Block interface {
	blockNode()
}

// Heading is a section heading of any level.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a run of prose.
type Paragraph struct {
	Text string
}

// List is an ordered or unordered list flattened to item text.
type List struct {
	Ordered bool
	Items   []string
}

// Table preserves the row/cell structure of a pipe table. The first row may
// be an explicit header row (Header set) when the converter distinguishes
// one; collectors fall back to positional header resolution otherwise.
type Table struct {
	Rows []TableRow
}

// TableRow is an ordered sequence of cells. Header marks rows the converter
// identified as header rows.
type TableRow struct {
	Header bool
	Cells  []TableCell
}

// TableCell carries trimmed cell text. Header marks designated header cells.
type TableCell struct {
	Header bool
	Text   string
}

func (Heading) blockNode()   {}
func (Paragraph) blockNode() {}
func (List) blockNode()      {}
func (Table) blockNode()     {}

// TreeParser converts raw Markdown into a BlockTree. A failure here is fatal
// to the whole extraction call: callers must surface it rather than build a
// partial snapshot.
type TreeParser interface {
	ParseTree(source []byte) (*BlockTree, error)
}

// ReportFrontMatter models optional YAML metadata carried at the top of a
// generated report. Absent frontmatter leaves every field zero-valued.
type ReportFrontMatter struct {
	Title  string         `yaml:"title" json:"title"`
	Fleet  string         `yaml:"fleet" json:"fleet"`
	Date   time.Time      `yaml:"date" json:"date"`
	Custom map[string]any `yaml:",inline" json:"custom"`
}
