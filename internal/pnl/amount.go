package pnl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyMarks = regexp.MustCompile(`(?i)rp\.?|idr|usd|eur|[$€£%\s\x{00a0}]`)
	plainNumber   = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// ParseAmount parses a spreadsheet number written with either "." or ","
// as grouping separator. Examples: "1.000.000" -> 1000000, "3,500" -> 3500,
// "1.234,56" -> 1234.56, "(2.500)" -> -2500, "Rp 12.000" -> 12000.
// Blank cells and a lone dash are zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := currencyMarks.ReplaceAllString(strings.TrimSpace(s), "")
	if clean == "" || clean == "-" || clean == "–" {
		return decimal.Zero, nil
	}

	neg := false

	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		neg = true
		clean = clean[1 : len(clean)-1]
	}

	switch {
	case strings.HasPrefix(clean, "-"):
		neg = !neg
		clean = clean[1:]
	case strings.HasSuffix(clean, "-"):
		neg = !neg
		clean = clean[:len(clean)-1]
	case strings.HasPrefix(clean, "+"):
		clean = clean[1:]
	}

	clean = normaliseSeparators(clean)
	if !plainNumber.MatchString(clean) {
		return decimal.Zero, fmt.Errorf("not a number: %q", s)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, err
	}

	if neg {
		d = d.Neg()
	}

	return d, nil
}

// normaliseSeparators rewrites s so that "." is the only, decimal,
// separator. When both marks appear the last one is decimal. A single mark
// is grouping when it repeats or is followed by exactly three digits,
// unless the integer part is 0 ("0.500").
func normaliseSeparators(s string) string {
	last := strings.LastIndexAny(s, ".,")
	if last < 0 {
		return s
	}

	mark := s[last]

	other := byte(',')
	if mark == ',' {
		other = '.'
	}

	if strings.IndexByte(s, other) >= 0 {
		s = strings.ReplaceAll(s, string(other), "")
		return strings.Replace(s, string(mark), ".", 1)
	}

	digitsAfter := len(s) - last - 1
	grouping := strings.Count(s, string(mark)) > 1 || (digitsAfter == 3 && s[:last] != "0")

	if grouping {
		return strings.ReplaceAll(s, string(mark), "")
	}

	return strings.Replace(s, string(mark), ".", 1)
}
