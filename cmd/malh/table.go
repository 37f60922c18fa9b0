package main

import (
	"fmt"
	"strings"
)

// printTable renders rows under header as a fixed-width, pipe-separated
// table, adapted from the original REPL's printRows/printHeader/printRow:
// same column-sizing and separator-line idiom, simplified because this
// engine's cells are always populated strings, never NULL.
func printTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow(&b, header, widths)
	b.WriteByte('\n')
	for i, w := range widths {
		fmt.Fprintf(&b, "-%s-", strings.Repeat("-", w))
		if i != len(widths)-1 {
			b.WriteByte('+')
		}
	}
	b.WriteByte('\n')
	for _, row := range rows {
		writeRow(&b, row, widths)
		b.WriteByte('\n')
	}
	if len(rows) == 0 {
		b.WriteString("(0 rows)\n")
	}
	return b.String()
}

func writeRow(b *strings.Builder, row []string, widths []int) {
	for i, cell := range row {
		fmt.Fprintf(b, " %-*s ", widths[i], cell)
		if i != len(row)-1 {
			b.WriteByte('|')
		}
	}
}
