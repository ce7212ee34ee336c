package pnl

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/plsync/internal/grid"
)

const (
	// headerScanRows is how many leading rows may hold the month header.
	headerScanRows = 5
	// firstValueCol is the first column that can hold a month; columns to
	// its left carry the prefix code and labels.
	firstValueCol = 5
)

var monthHeader = regexp.MustCompile(`(?i)^([a-z]+)\.?[\s\-/'_.]*(\d{4}|\d{2})\s*[-/(]?\s*([a-z]*)\.?\s*\)?$`)

var monthNames = map[string]int{
	"jan": 1, "january": 1, "januari": 1,
	"feb": 2, "february": 2, "februari": 2,
	"mar": 3, "march": 3, "maret": 3,
	"apr": 4, "april": 4,
	"may": 5, "mei": 5,
	"jun": 6, "june": 6, "juni": 6,
	"jul": 7, "july": 7, "juli": 7,
	"aug": 8, "august": 8, "agu": 8, "agt": 8, "agustus": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10, "okt": 10, "oktober": 10,
	"nov": 11, "november": 11, "nop": 11,
	"dec": 12, "december": 12, "des": 12, "desember": 12,
}

var (
	actualMarkers = map[string]bool{"actual": true, "act": true, "aktual": true, "real": true, "realisasi": true}
	budgetMarkers = map[string]bool{"": true, "budget": true, "bgt": true, "bud": true, "plan": true, "target": true}
)

// ParseMonthHeader parses a header cell such as "Jan 25", "Jan-25 Act."
// or "January 2025 (Actual)". Cells without a marker are budget columns.
func ParseMonthHeader(cell string) (month, year int, actual, ok bool) {
	m := monthHeader.FindStringSubmatch(strings.TrimSpace(cell))
	if m == nil {
		return 0, 0, false, false
	}

	month, ok = monthNames[strings.ToLower(m[1])]
	if !ok {
		return 0, 0, false, false
	}

	year, _ = strconv.Atoi(m[2])
	if len(m[2]) == 2 {
		year += 2000
	}

	marker := strings.ToLower(m[3])

	switch {
	case actualMarkers[marker]:
		return month, year, true, true
	case budgetMarkers[marker]:
		return month, year, false, true
	}

	return 0, 0, false, false
}

// monthColumns parses every cell of a header row from firstValueCol on.
func monthColumns(row []string, yearOverride int) []MonthColumn {
	var cols []MonthColumn

	for i := firstValueCol; i < len(row); i++ {
		month, year, actual, ok := ParseMonthHeader(row[i])
		if !ok {
			continue
		}

		if yearOverride > 0 {
			year = yearOverride
		}

		cols = append(cols, MonthColumn{Index: i, Month: month, Year: year, Actual: actual})
	}

	return cols
}

// detectHeader returns the first of the leading rows holding at least one
// month header, and the cells it looked at.
func detectHeader(g grid.Grid) (int, [][]string, bool) {
	scanned := make([][]string, 0, headerScanRows)

	for r := 0; r < headerScanRows && r < len(g); r++ {
		var cells []string
		if len(g[r]) > firstValueCol {
			cells = g[r][firstValueCol:]
		}

		scanned = append(scanned, cells)

		if len(monthColumns(g[r], 0)) > 0 {
			return r, scanned, true
		}
	}

	return -1, scanned, false
}
