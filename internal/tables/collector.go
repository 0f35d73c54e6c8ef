// Package tables turns block trees into addressable row data: ordered table
// collection, nearest-heading context resolution, and the fuzzy semantic key
// lookup shared by every row mapper.
package tables

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-insights/pkg/interfaces"
)

// RawTable is a collected table: ordered headers, header-keyed rows, and the
// table's position in document order. Zero-row tables are retained so callers
// keep position information; they decide whether to skip them.
type RawTable struct {
	// Position is the table ordinal in document order, starting at 0.
	Position int
	// BlockIndex locates the table inside the source block tree, for
	// context resolution.
	BlockIndex int
	// Headers preserves column order. Columns without a resolvable name
	// receive a positional placeholder (col_<index>).
	Headers []string
	Rows    []Row
}

// Collect walks the tree and yields each table as a RawTable in document
// order. Header sourcing precedence: an explicit header row; else a first row
// made entirely of designated header cells; else the first plain row promoted
// to headers and skipped from the data rows.
func Collect(tree *interfaces.BlockTree) []RawTable {
	if tree == nil {
		return nil
	}

	var out []RawTable
	for idx, block := range tree.Blocks {
		table, ok := block.(interfaces.Table)
		if !ok {
			continue
		}
		raw := RawTable{
			Position:   len(out),
			BlockIndex: idx,
		}
		headers, dataRows := splitHeader(table.Rows)
		raw.Headers = resolveHeaders(headers)
		for _, row := range dataRows {
			mapped := mapRow(raw.Headers, row)
			if len(mapped) == 0 {
				continue
			}
			raw.Rows = append(raw.Rows, mapped)
		}
		out = append(out, raw)
	}
	return out
}

// splitHeader picks the header row and returns the remaining data rows.
func splitHeader(rows []interfaces.TableRow) ([]interfaces.TableCell, []interfaces.TableRow) {
	if len(rows) == 0 {
		return nil, nil
	}
	for i, row := range rows {
		if row.Header {
			rest := make([]interfaces.TableRow, 0, len(rows)-1)
			rest = append(rest, rows[:i]...)
			rest = append(rest, rows[i+1:]...)
			return row.Cells, rest
		}
	}
	// No explicit header row: promote the first row whether or not its
	// cells are marked, so column data is never keyed positionally when a
	// label row exists.
	return rows[0].Cells, rows[1:]
}

func resolveHeaders(cells []interfaces.TableCell) []string {
	headers := make([]string, len(cells))
	for i, cell := range cells {
		name := strings.TrimSpace(cell.Text)
		if name == "" {
			name = fmt.Sprintf("col_%d", i)
		}
		headers[i] = name
	}
	return headers
}

// mapRow aligns cells to headers. Excess cells are ignored, missing cells and
// empty cells leave their keys unset.
func mapRow(headers []string, row interfaces.TableRow) Row {
	mapped := Row{}
	for i, cell := range row.Cells {
		if i >= len(headers) {
			break
		}
		value := strings.TrimSpace(cell.Text)
		if value == "" {
			continue
		}
		mapped[headers[i]] = value
	}
	return mapped
}
