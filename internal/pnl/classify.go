package pnl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/schollz/closestmatch"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/plsync/internal/grid"
)

// minPopulated is the fewest non-blank cells a data row needs.
const minPopulated = 3

// ClassifyOptions are operator escape hatches for sheets whose header has
// drifted.
type ClassifyOptions struct {
	// YearOverride, when positive, replaces the year of every month column.
	YearOverride int
	// HeaderRow pins the header row index instead of detecting it.
	HeaderRow *int
}

// Classification is the result of one pass over the grid.
type Classification struct {
	Columns []MonthColumn
	Records map[Key]*Record
	Debug   *Debug
}

// Classify finds the month header and folds every following row into the
// per-month records. The running section is carried from row to row, so
// the outcome of a row depends on the rows above it.
func Classify(g grid.Grid, opts ClassifyOptions) (*Classification, error) {
	debug := &Debug{HeaderRow: -1, Transitions: []SectionTransition{}}

	headerRow, scanned, found := detectHeader(g)
	if opts.HeaderRow != nil {
		headerRow = *opts.HeaderRow
		found = headerRow >= 0 && headerRow < len(g)
	}

	if !found {
		debug.ScannedCells = scanned

		return nil, &Error{
			Kind:  KindNoHeaderFound,
			Msg:   fmt.Sprintf("no month header in the first %d rows", headerScanRows),
			Debug: debug,
		}
	}

	debug.HeaderRow = headerRow

	cols := monthColumns(g[headerRow], opts.YearOverride)
	if len(cols) == 0 {
		if len(g[headerRow]) > firstValueCol {
			debug.ScannedCells = [][]string{g[headerRow][firstValueCol:]}
		}

		return nil, &Error{
			Kind:  KindNoMonthColumns,
			Msg:   fmt.Sprintf("row %d has no month headers", headerRow),
			Debug: debug,
		}
	}

	cols = uniqueColumns(cols, headerRow, debug)
	debug.Columns = cols

	records := make(map[Key]*Record, len(cols))
	for _, c := range cols {
		records[c.Key()] = NewRecord(c.Key())
	}

	acc := walk{
		columns:  cols,
		labelEnd: cols[0].Index,
		records:  records,
		debug:    debug,
		suggest:  closestmatch.New(knownKeywords(), []int{2, 3}),
	}

	for i := headerRow + 1; i < len(g); i++ {
		acc = acc.step(i, g[i])
	}

	return &Classification{Columns: cols, Records: records, Debug: debug}, nil
}

// uniqueColumns keeps the first column per key; a repeated header would
// otherwise double every value of that month.
func uniqueColumns(cols []MonthColumn, headerRow int, debug *Debug) []MonthColumn {
	seen := make(map[Key]bool, len(cols))
	out := cols[:0]

	for _, c := range cols {
		if seen[c.Key()] {
			debug.warn(RowWarning{Row: headerRow, Column: c.Index, Message: "duplicate month column " + c.Key().String() + " ignored"})
			continue
		}

		seen[c.Key()] = true
		out = append(out, c)
	}

	return out
}

// walk is the accumulator of the row fold.
type walk struct {
	section  Section
	columns  []MonthColumn
	labelEnd int
	records  map[Key]*Record
	debug    *Debug
	suggest  *closestmatch.ClosestMatch
}

func (w walk) step(idx int, row []string) walk {
	w.debug.RowsScanned++

	label := rowLabel(row, w.labelEnd)
	if next, ok := declaredSection(row, label); ok && next != w.section {
		w.debug.Transitions = append(w.debug.Transitions, SectionTransition{Row: idx, From: w.section, To: next})
		w.section = next
	}

	if grid.Populated(row) < minPopulated {
		w.debug.RowsSkipped++
		return w
	}

	field, kind := assign(label, w.section)
	if kind == rowRatio {
		w.debug.RowsSkipped++
	}

	for _, col := range w.columns {
		raw := grid.CellValue(row, col.Index)

		v, err := ParseAmount(raw)
		if err != nil {
			if kind != rowRatio {
				w.debug.warn(RowWarning{Row: idx, Column: col.Index, Raw: raw, Message: err.Error()})
			}

			continue
		}

		if v.IsZero() {
			continue
		}

		switch kind {
		case rowItem, rowTotal:
			w.write(col.Key(), field, kind == rowTotal, v)
			w.debug.sample(SampleValue{Row: idx, Column: col.Index, Raw: raw, Parsed: v.String(), Field: field})
		case rowSubtotal:
			w.debug.unmatched(UnmatchedLabel{Row: idx, Section: w.section, Label: label, Note: noteSubtotal})
		case rowRatio:
			w.debug.unmatched(UnmatchedLabel{Row: idx, Section: w.section, Label: label, Note: noteRatio})
		default:
			w.debug.unmatched(UnmatchedLabel{
				Row:        idx,
				Section:    w.section,
				Label:      label,
				Suggestion: w.suggest.Closest(strings.ToLower(label)),
			})
		}
	}

	return w
}

// write stores v. Line items accumulate because a sheet may split one
// category over several rows; totals are taken as written.
func (w walk) write(key Key, f Field, isTotal bool, v decimal.Decimal) {
	rec := w.records[key]
	if isTotal {
		rec.Set(f, v)
		return
	}

	rec.Add(f, v)
}

// rowKind is what a row's values are used for.
type rowKind int

const (
	rowUnmatched rowKind = iota
	rowItem
	rowTotal
	// rowSubtotal sums items already read on rows above it.
	rowSubtotal
	// rowRatio holds a percentage that is derived instead.
	rowRatio
)

const (
	noteSubtotal = "subtotal of the rows above, not stored"
	noteRatio    = "ratio row, derived from the totals instead"
)

// assign resolves the field a row's values go to. Ratio labels are checked
// first ("EBIT Margin" must not reach the EBIT rule). Total rules are
// checked whatever the section is, because total rows rarely carry a prefix
// code. A label with a total word that no total rule claims ("Total Food")
// is a subtotal and never reaches the category table.
func assign(label string, s Section) (Field, rowKind) {
	if label == "" {
		return "", rowUnmatched
	}

	if ratioLabel.MatchString(label) {
		return "", rowRatio
	}

	if f, ok := matchTotal(label, s); ok {
		return f, rowTotal
	}

	if totalWord.MatchString(label) {
		return "", rowSubtotal
	}

	if f, ok := matchCategory(label, s); ok {
		return f, rowItem
	}

	return "", rowUnmatched
}

// declaredSection reports the section a row opens, from its prefix code or
// from a label that is exactly a section heading.
func declaredSection(row []string, label string) (Section, bool) {
	if m := prefixCode.FindStringSubmatch(grid.CellValue(row, 0)); m != nil {
		return sectionByCode[m[1][0]], true
	}

	s, ok := sectionHeaders[normaliseLabel(label)]

	return s, ok
}

// rowLabel joins the label cells left of the first month column, dropping
// the prefix code.
func rowLabel(row []string, end int) string {
	parts := make([]string, 0, end)

	for i := 0; i < end && i < len(row); i++ {
		cell := grid.CellValue(row, i)
		if i == 0 {
			if m := prefixCode.FindStringSubmatch(cell); m != nil {
				cell = strings.TrimSpace(m[2])
			}
		}

		if cell != "" {
			parts = append(parts, cell)
		}
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

var nonLetters = regexp.MustCompile(`[^\pL\s]+`)

func normaliseLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(nonLetters.ReplaceAllString(label, " "))), " ")
}

// SectionWalk returns the section in force at each row, using the same
// transition rule as Classify. Useful when checking a sheet layout.
func SectionWalk(rows [][]string) []Section {
	out := make([]Section, len(rows))
	current := SectionNone

	for i, row := range rows {
		if next, ok := declaredSection(row, rowLabel(row, firstValueCol)); ok {
			current = next
		}

		out[i] = current
	}

	return out
}
