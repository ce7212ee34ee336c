// Package source fetches the P&L sheet as a raw grid from an uploaded
// file, a published CSV link or the Google Sheets API.
package source

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/plsync/internal/grid"
)

type Source interface {
	Fetch(ctx context.Context) (grid.Grid, error)
}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf picks the format from a file name; anything that is not a
// workbook is read as CSV.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// Parse reads an uploaded sheet. sheet selects the worksheet of a workbook
// and is ignored for CSV.
func Parse(format Format, r io.Reader, sheet string) (grid.Grid, error) {
	switch format {
	case FormatCSV:
		return grid.ParseCSV(r)
	case FormatXLSX:
		return grid.ParseXLSX(r, sheet)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// Reader is a Source over an already open file.
type Reader struct {
	r      io.Reader
	format Format
	sheet  string
}

func NewReader(r io.Reader, name, sheet string) *Reader {
	return &Reader{r: r, format: FormatOf(name), sheet: sheet}
}

func (s *Reader) Fetch(_ context.Context) (grid.Grid, error) {
	return Parse(s.format, s.r, s.sheet)
}
