package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/plsync/internal/pnl"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders a value with thousands grouping and no decimals
// unless the value has a fractional part, e.g. "1,250,000" or "-12.50".
func FormatAmount(d decimal.Decimal) string {
	places := int32(0)
	if !d.Equal(d.Truncate(0)) {
		places = 2
	}

	s := d.Abs().StringFixed(places)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}

	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}

	return b.String()
}

// FormatPct formats a ratio field, already expressed in percent.
func FormatPct(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

// FormatKey formats a record key as "Jan 2025 budget".
func FormatKey(k pnl.Key) string {
	return fmt.Sprintf("%s %d %s", time.Month(k.Month).String()[:3], k.Year, k.DataType)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s)
}

func okStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(s)
}

func warnStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(s)
}
