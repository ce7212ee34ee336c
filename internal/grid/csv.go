package grid

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ParseCSV reads a published-sheet CSV export into a Grid.
// Quoted cells may hold commas, newlines and doubled quotes.
func ParseCSV(r io.Reader) (Grid, error) {
	utf8r, err := utf8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return Grid(rows), nil
}
