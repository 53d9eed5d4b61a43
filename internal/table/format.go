package table

import (
	"fmt"
	"strings"
)

// Format renders the table as aligned text, truncated to maxRows body
// rows (0 means no limit). Numeric columns are right-aligned.
func Format(t *Table, maxRows int) string {
	rows := t.NumRows()
	shown := rows
	if maxRows > 0 && shown > maxRows {
		shown = maxRows
	}

	widths := make([]int, len(t.cols))
	cells := make([][]string, shown)
	for j, c := range t.cols {
		widths[j] = len(c.Name())
	}
	for i := 0; i < shown; i++ {
		cells[i] = make([]string, len(t.cols))
		for j, c := range t.cols {
			s := c.label(i)
			cells[i][j] = s
			if len(s) > widths[j] {
				widths[j] = len(s)
			}
		}
	}

	var b strings.Builder
	for j, c := range t.cols {
		if j > 0 {
			b.WriteString("  ")
		}
		pad(&b, c.Name(), widths[j], c.IsNumeric())
	}
	b.WriteByte('\n')
	for i := 0; i < shown; i++ {
		for j, c := range t.cols {
			if j > 0 {
				b.WriteString("  ")
			}
			pad(&b, cells[i][j], widths[j], c.IsNumeric())
		}
		b.WriteByte('\n')
	}
	if shown < rows {
		fmt.Fprintf(&b, "... %d more rows\n", rows-shown)
	}
	fmt.Fprintf(&b, "[%d rows x %d columns]\n", rows, len(t.cols))
	return b.String()
}

func pad(b *strings.Builder, s string, width int, rightAlign bool) {
	if rightAlign {
		for i := len(s); i < width; i++ {
			b.WriteByte(' ')
		}
		b.WriteString(s)
		return
	}
	b.WriteString(s)
	for i := len(s); i < width; i++ {
		b.WriteByte(' ')
	}
}
