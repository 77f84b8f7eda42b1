package parser

import (
	"strings"
)

// column is a named header cell and its 0-based column index.
type column struct {
	Name  string
	Index int
}

// findHeaderRow returns the index of the first row holding any non-empty
// cell, or -1 when the sheet is empty.
func findHeaderRow(rows [][]string) int {
	for rowIdx, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return rowIdx
			}
		}
	}
	return -1
}

// mapColumns maps header names to column positions. Names are trimmed;
// blank header cells are skipped and a repeated name keeps its first column.
func mapColumns(header []string) []column {
	var columns []column
	seen := make(map[string]bool, len(header))
	for colIdx, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		columns = append(columns, column{Name: name, Index: colIdx})
	}
	return columns
}
