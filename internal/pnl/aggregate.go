package pnl

import (
	"github.com/shopspring/decimal"
)

// staleTotalFactor: a stored fixed/opex total is replaced by the sum of its
// items when that sum exceeds it by more than this factor. Kept for
// compatibility with existing sheets; the threshold has no documented basis.
var staleTotalFactor = decimal.NewFromInt(2)

var hundred = decimal.NewFromInt(100)

// Aggregate drops records without any activity, fills missing or stale
// totals and derives the ratios. Line-item overrides are applied before
// the totals are filled, total overrides after. The result is
// sorted by key.
func Aggregate(records map[Key]*Record, pins *Pins) []*Record {
	out := make([]*Record, 0, len(records))

	for _, rec := range records {
		if !rec.HasActivity() {
			continue
		}

		pins.apply(rec, KindLineItem)
		fillTotals(rec)
		pins.apply(rec, KindTotal)
		deriveRatios(rec)

		out = append(out, rec)
	}

	SortRecords(out)

	return out
}

func sumOf(rec *Record, fields []Field) decimal.Decimal {
	sum := decimal.Zero
	for _, f := range fields {
		sum = sum.Add(rec.Get(f))
	}

	return sum
}

func fillIfZero(rec *Record, f Field, v decimal.Decimal) {
	if rec.Get(f).IsZero() {
		rec.Set(f, v)
	}
}

// fillStale recomputes f from its items when it is zero or implausibly
// small next to them.
func fillStale(rec *Record, f Field, items decimal.Decimal) {
	stored := rec.Get(f)
	if stored.IsZero() || items.GreaterThan(stored.Abs().Mul(staleTotalFactor)) {
		rec.Set(f, items)
	}
}

func fillTotals(rec *Record) {
	fillIfZero(rec, FieldGrossSales, sumOf(rec, lineItems(SectionRevenue)))
	fillIfZero(rec, FieldNetSales, rec.Get(FieldGrossSales).Sub(rec.Get(FieldDiscounts).Abs()))
	fillIfZero(rec, FieldCOGSTotal, sumOf(rec, lineItems(SectionCOGS)))
	fillIfZero(rec, FieldLaborTotal, sumOf(rec, lineItems(SectionLabor)))
	fillStale(rec, FieldFixedTotal, sumOf(rec, lineItems(SectionFixed)))
	fillStale(rec, FieldOpexTotal, sumOf(rec, lineItems(SectionOpex)))
	fillIfZero(rec, FieldGrossProfit, rec.Get(FieldNetSales).Sub(rec.Get(FieldCOGSTotal)))

	operating := rec.Get(FieldGrossProfit).
		Sub(rec.Get(FieldLaborTotal)).
		Sub(rec.Get(FieldFixedTotal)).
		Sub(rec.Get(FieldOpexTotal))
	fillIfZero(rec, FieldEBIT, operating)
}

func deriveRatios(rec *Record) {
	net := rec.Get(FieldNetSales)

	ratio := func(f Field) decimal.Decimal {
		if net.IsZero() {
			return decimal.Zero
		}

		return rec.Get(f).Div(net).Mul(hundred).Round(2)
	}

	rec.Set(FieldCOGSPct, ratio(FieldCOGSTotal))
	rec.Set(FieldLaborPct, ratio(FieldLaborTotal))
	rec.Set(FieldGrossMargin, ratio(FieldGrossProfit))
	rec.Set(FieldEBITMargin, ratio(FieldEBIT))
}
