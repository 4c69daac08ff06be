package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes how a single column is laid out. MaxWidth of zero means
// unlimited; wider cells are cut with an ellipsis.
type Column struct {
	Align    Alignment
	MaxWidth int
}

// Format returns the rows padded according to the widest entry in each
// column, with trailing blanks trimmed. Widths are measured in terminal
// cells, so styled or wide characters line up.
func Format(rows [][]string, columns []Column) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for i, row := range rows {
		cells[i] = make([]string, colCount)
		for c := 0; c < colCount; c++ {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if c < len(columns) && columns[c].MaxWidth > 0 && lipgloss.Width(cell) > columns[c].MaxWidth {
				cell = truncate.StringWithTail(cell, uint(columns[c].MaxWidth), "…")
			}
			cells[i][c] = cell
			if w := lipgloss.Width(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - lipgloss.Width(cell)
			if c < len(columns) && columns[c].Align == AlignRight {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
			}
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}
