package grid

import "strings"

// Grid is a spreadsheet export as rows of text cells. Rows may be ragged.
type Grid [][]string

// Cell returns the trimmed text at (row, col), or "" when out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}

	return cellValue(g[row], col)
}

// Populated counts the non-blank cells of a row.
func Populated(row []string) int {
	n := 0

	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}

	return n
}

// CellValue safely gets a trimmed cell value from a row.
func CellValue(row []string, idx int) string {
	return cellValue(row, idx)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
