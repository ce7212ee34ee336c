package pnl

import "fmt"

// Field names a stored numeric column of a Record.
type Field string

// Line items.
const (
	FieldRevenueFood       Field = "revenue_food"
	FieldRevenueWine       Field = "revenue_wine"
	FieldRevenueSpirits    Field = "revenue_spirits"
	FieldRevenueCocktails  Field = "revenue_cocktails"
	FieldRevenueBeer       Field = "revenue_beer"
	FieldRevenueSoftDrinks Field = "revenue_soft_drinks"
	FieldRevenueTobacco    Field = "revenue_tobacco"
	FieldRevenueEvents     Field = "revenue_events"
	FieldRevenueOther      Field = "revenue_other"

	FieldCOGSFood       Field = "cogs_food"
	FieldCOGSWine       Field = "cogs_wine"
	FieldCOGSSpirits    Field = "cogs_spirits"
	FieldCOGSCocktails  Field = "cogs_cocktails"
	FieldCOGSBeer       Field = "cogs_beer"
	FieldCOGSSoftDrinks Field = "cogs_soft_drinks"
	FieldCOGSTobacco    Field = "cogs_tobacco"
	FieldCOGSOther      Field = "cogs_other"

	FieldLabor13th          Field = "labor_13th"
	FieldLaborCasual        Field = "labor_casual"
	FieldLaborServiceCharge Field = "labor_service_charge"
	FieldLaborOvertime      Field = "labor_overtime"
	FieldLaborBenefits      Field = "labor_benefits"
	FieldLaborTraining      Field = "labor_training"
	FieldLaborSalary        Field = "labor_salary"
	FieldLaborOther         Field = "labor_other"

	FieldFixedRental       Field = "fixed_rental"
	FieldFixedInsurance    Field = "fixed_insurance"
	FieldFixedDepreciation Field = "fixed_depreciation"
	FieldFixedLicenses     Field = "fixed_licenses"
	FieldFixedOther        Field = "fixed_other"

	FieldOpexMarketing     Field = "opex_marketing"
	FieldOpexUtilities     Field = "opex_utilities"
	FieldOpexMaintenance   Field = "opex_maintenance"
	FieldOpexSupplies      Field = "opex_supplies"
	FieldOpexBankCharges   Field = "opex_bank_charges"
	FieldOpexTechnology    Field = "opex_technology"
	FieldOpexEntertainment Field = "opex_entertainment"
	FieldOpexTransport     Field = "opex_transport"
	FieldOpexOther         Field = "opex_other"

	FieldOtherIncome  Field = "other_income"
	FieldOtherExpense Field = "other_expense"
)

// Totals and summary lines.
const (
	FieldGrossSales  Field = "gross_sales"
	FieldDiscounts   Field = "discounts"
	FieldNetSales    Field = "net_sales"
	FieldCOGSTotal   Field = "cogs_total"
	FieldLaborTotal  Field = "labor_total"
	FieldFixedTotal  Field = "fixed_total"
	FieldOpexTotal   Field = "opex_total"
	FieldGrossProfit Field = "gross_profit"
	FieldEBITDA      Field = "ebitda"
	FieldEBIT        Field = "ebit"
)

// Ratios, always derived.
const (
	FieldCOGSPct     Field = "cogs_pct"
	FieldLaborPct    Field = "labor_pct"
	FieldGrossMargin Field = "gross_margin"
	FieldEBITMargin  Field = "ebit_margin"
)

// FieldKind says how a field is populated.
type FieldKind int

const (
	KindLineItem FieldKind = iota
	KindTotal
	KindRatio
)

// FieldDef describes one column of the persisted record.
type FieldDef struct {
	Field   Field
	Section Section
	Kind    FieldKind
}

// fieldDefs is the persisted column order.
var fieldDefs = []FieldDef{
	{FieldRevenueFood, SectionRevenue, KindLineItem},
	{FieldRevenueWine, SectionRevenue, KindLineItem},
	{FieldRevenueSpirits, SectionRevenue, KindLineItem},
	{FieldRevenueCocktails, SectionRevenue, KindLineItem},
	{FieldRevenueBeer, SectionRevenue, KindLineItem},
	{FieldRevenueSoftDrinks, SectionRevenue, KindLineItem},
	{FieldRevenueTobacco, SectionRevenue, KindLineItem},
	{FieldRevenueEvents, SectionRevenue, KindLineItem},
	{FieldRevenueOther, SectionRevenue, KindLineItem},
	{FieldGrossSales, SectionRevenue, KindTotal},
	{FieldDiscounts, SectionRevenue, KindTotal},
	{FieldNetSales, SectionRevenue, KindTotal},

	{FieldCOGSFood, SectionCOGS, KindLineItem},
	{FieldCOGSWine, SectionCOGS, KindLineItem},
	{FieldCOGSSpirits, SectionCOGS, KindLineItem},
	{FieldCOGSCocktails, SectionCOGS, KindLineItem},
	{FieldCOGSBeer, SectionCOGS, KindLineItem},
	{FieldCOGSSoftDrinks, SectionCOGS, KindLineItem},
	{FieldCOGSTobacco, SectionCOGS, KindLineItem},
	{FieldCOGSOther, SectionCOGS, KindLineItem},
	{FieldCOGSTotal, SectionCOGS, KindTotal},

	{FieldLabor13th, SectionLabor, KindLineItem},
	{FieldLaborCasual, SectionLabor, KindLineItem},
	{FieldLaborServiceCharge, SectionLabor, KindLineItem},
	{FieldLaborOvertime, SectionLabor, KindLineItem},
	{FieldLaborBenefits, SectionLabor, KindLineItem},
	{FieldLaborTraining, SectionLabor, KindLineItem},
	{FieldLaborSalary, SectionLabor, KindLineItem},
	{FieldLaborOther, SectionLabor, KindLineItem},
	{FieldLaborTotal, SectionLabor, KindTotal},

	{FieldFixedRental, SectionFixed, KindLineItem},
	{FieldFixedInsurance, SectionFixed, KindLineItem},
	{FieldFixedDepreciation, SectionFixed, KindLineItem},
	{FieldFixedLicenses, SectionFixed, KindLineItem},
	{FieldFixedOther, SectionFixed, KindLineItem},
	{FieldFixedTotal, SectionFixed, KindTotal},

	{FieldOpexMarketing, SectionOpex, KindLineItem},
	{FieldOpexUtilities, SectionOpex, KindLineItem},
	{FieldOpexMaintenance, SectionOpex, KindLineItem},
	{FieldOpexSupplies, SectionOpex, KindLineItem},
	{FieldOpexBankCharges, SectionOpex, KindLineItem},
	{FieldOpexTechnology, SectionOpex, KindLineItem},
	{FieldOpexEntertainment, SectionOpex, KindLineItem},
	{FieldOpexTransport, SectionOpex, KindLineItem},
	{FieldOpexOther, SectionOpex, KindLineItem},
	{FieldOpexTotal, SectionOpex, KindTotal},

	{FieldOtherIncome, SectionOther, KindLineItem},
	{FieldOtherExpense, SectionOther, KindLineItem},

	{FieldGrossProfit, SectionNone, KindTotal},
	{FieldEBITDA, SectionNone, KindTotal},
	{FieldEBIT, SectionNone, KindTotal},

	{FieldCOGSPct, SectionNone, KindRatio},
	{FieldLaborPct, SectionNone, KindRatio},
	{FieldGrossMargin, SectionNone, KindRatio},
	{FieldEBITMargin, SectionNone, KindRatio},
}

var fieldIndex = func() map[Field]FieldDef {
	m := make(map[Field]FieldDef, len(fieldDefs))
	for _, d := range fieldDefs {
		m[d.Field] = d
	}

	return m
}()

// Fields returns every persisted field in column order.
func Fields() []FieldDef {
	out := make([]FieldDef, len(fieldDefs))
	copy(out, fieldDefs)

	return out
}

// LookupField returns the definition of a field name.
func LookupField(name string) (FieldDef, error) {
	def, ok := fieldIndex[Field(name)]
	if !ok {
		return FieldDef{}, fmt.Errorf("unknown field %q", name)
	}

	return def, nil
}

// lineItems returns the line-item fields of a section.
func lineItems(s Section) []Field {
	var out []Field

	for _, d := range fieldDefs {
		if d.Section == s && d.Kind == KindLineItem {
			out = append(out, d.Field)
		}
	}

	return out
}
