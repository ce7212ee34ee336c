package pnl

import (
	"regexp"
	"strings"
)

// keywords compiles a case-insensitive whole-word alternation.
func keywords(words ...string) *regexp.Regexp {
	alts := make([]string, len(words))
	for i, w := range words {
		alts[i] = strings.Join(strings.Fields(regexp.QuoteMeta(w)), `\s+`)
	}

	return regexp.MustCompile(`(?i)(?:^|[^\pL\pN])(?:` + strings.Join(alts, "|") + `)(?:$|[^\pL\pN])`)
}

// prefixCode matches the outline number in a row's first cell: "1.", "2.1",
// "3 Labour".
var prefixCode = regexp.MustCompile(`^([1-9])(?:\.\d+)*\.?(?:\s+(.*))?$`)

var sectionByCode = map[byte]Section{
	'1': SectionRevenue,
	'2': SectionCOGS,
	'3': SectionLabor,
	'4': SectionFixed,
	'5': SectionOpex,
	'6': SectionOther,
	'7': SectionOther,
	'8': SectionOther,
	'9': SectionOther,
}

// sectionHeaders is matched against the whole normalised label of rows that
// carry no prefix code.
var sectionHeaders = map[string]Section{
	"revenue":                   SectionRevenue,
	"revenues":                  SectionRevenue,
	"sales":                     SectionRevenue,
	"income from sales":         SectionRevenue,
	"pendapatan":                SectionRevenue,
	"penjualan":                 SectionRevenue,
	"cost of goods sold":        SectionCOGS,
	"cost of goods":             SectionCOGS,
	"cost of sales":             SectionCOGS,
	"cogs":                      SectionCOGS,
	"hpp":                       SectionCOGS,
	"labor":                     SectionLabor,
	"labour":                    SectionLabor,
	"labor cost":                SectionLabor,
	"labor costs":               SectionLabor,
	"labour cost":               SectionLabor,
	"labour costs":              SectionLabor,
	"payroll":                   SectionLabor,
	"staff cost":                SectionLabor,
	"staff costs":               SectionLabor,
	"personnel":                 SectionLabor,
	"fixed":                     SectionFixed,
	"fixed cost":                SectionFixed,
	"fixed costs":               SectionFixed,
	"fixed expenses":            SectionFixed,
	"opex":                      SectionOpex,
	"operating expense":         SectionOpex,
	"operating expenses":        SectionOpex,
	"operating cost":            SectionOpex,
	"operating costs":           SectionOpex,
	"operational expenses":      SectionOpex,
	"other income":              SectionOther,
	"other expenses":            SectionOther,
	"other income and expenses": SectionOther,
	"other income expenses":     SectionOther,
	"non operating":             SectionOther,
	"non operating items":       SectionOther,
	"non operating income":      SectionOther,
	"non operating expenses":    SectionOther,
}

// categoryRule maps label keywords to a line item. Within a section the
// first matching rule wins, so specific rules sit above generic ones that
// share a word ("13th salary" before "salary").
type categoryRule struct {
	field    Field
	keywords *regexp.Regexp
}

func rule(f Field, words ...string) categoryRule {
	return categoryRule{field: f, keywords: keywords(words...)}
}

var (
	foodWords      = []string{"food", "foods", "makanan", "kitchen"}
	wineWords      = []string{"wine", "wines", "champagne", "sparkling", "prosecco", "sake"}
	spiritsWords   = []string{"spirit", "spirits", "liquor", "liquors", "whisky", "whiskey", "vodka", "gin", "rum", "tequila", "arak"}
	cocktailWords  = []string{"cocktail", "cocktails"}
	beerWords      = []string{"beer", "beers", "bir", "draught", "draft", "cider"}
	softDrinkWords = []string{"soft drink", "soft drinks", "non alcoholic", "non-alcoholic", "mocktail", "mocktails", "coffee", "tea", "juice", "juices", "water", "minuman"}
	tobaccoWords   = []string{"tobacco", "cigar", "cigars", "cigarette", "cigarettes", "shisha"}
	otherWords     = []string{"other", "others", "misc", "miscellaneous", "sundry", "lain-lain", "lainnya"}
)

var categoryRules = map[Section][]categoryRule{
	SectionRevenue: {
		rule(FieldRevenueFood, foodWords...),
		rule(FieldRevenueWine, wineWords...),
		rule(FieldRevenueSpirits, spiritsWords...),
		rule(FieldRevenueCocktails, cocktailWords...),
		rule(FieldRevenueBeer, beerWords...),
		rule(FieldRevenueSoftDrinks, softDrinkWords...),
		rule(FieldRevenueTobacco, tobaccoWords...),
		rule(FieldRevenueEvents, "event", "events", "private dining", "venue hire", "room hire", "ticket", "tickets", "entrance", "cover charge"),
		rule(FieldRevenueOther, append([]string{"merchandise", "merch"}, otherWords...)...),
	},
	SectionCOGS: {
		rule(FieldCOGSFood, foodWords...),
		rule(FieldCOGSWine, wineWords...),
		rule(FieldCOGSSpirits, spiritsWords...),
		rule(FieldCOGSCocktails, cocktailWords...),
		rule(FieldCOGSBeer, beerWords...),
		rule(FieldCOGSSoftDrinks, softDrinkWords...),
		rule(FieldCOGSTobacco, tobaccoWords...),
		rule(FieldCOGSOther, append([]string{"consumable", "consumables", "breakage", "spoilage", "waste"}, otherWords...)...),
	},
	SectionLabor: {
		rule(FieldLabor13th, "13th", "13th month", "thirteenth", "thr"),
		rule(FieldLaborCasual, "casual", "casuals", "extra shift", "extra shifts", "daily worker", "daily workers", "dw", "freelance", "freelancer", "freelancers", "part time", "part-time"),
		rule(FieldLaborServiceCharge, "service charge", "service charges", "sc distribution"),
		rule(FieldLaborOvertime, "overtime", "lembur"),
		rule(FieldLaborBenefits, "bpjs", "benefit", "benefits", "allowance", "allowances", "tunjangan", "pension", "medical", "health"),
		rule(FieldLaborTraining, "training", "recruitment", "uniform", "uniforms"),
		rule(FieldLaborSalary, "salary", "salaries", "wage", "wages", "gaji", "payroll"),
		rule(FieldLaborOther, append([]string{"staff meal", "staff meals"}, otherWords...)...),
	},
	SectionFixed: {
		rule(FieldFixedRental, "rent", "rental", "lease", "sewa"),
		rule(FieldFixedInsurance, "insurance", "asuransi"),
		rule(FieldFixedDepreciation, "depreciation", "amortization", "amortisation", "penyusutan"),
		rule(FieldFixedLicenses, "license", "licenses", "licence", "licences", "permit", "permits", "tax", "taxes", "pajak"),
		rule(FieldFixedOther, otherWords...),
	},
	SectionOpex: {
		rule(FieldOpexMarketing, "marketing", "advertising", "promotion", "promotions", "social media", "influencer", "influencers", "pr"),
		rule(FieldOpexUtilities, "utilities", "utility", "electricity", "electric", "listrik", "pln", "water", "gas", "internet"),
		rule(FieldOpexMaintenance, "maintenance", "repair", "repairs"),
		rule(FieldOpexSupplies, "supplies", "supply", "cleaning", "stationery", "laundry", "linen", "guest amenities"),
		rule(FieldOpexBankCharges, "bank charge", "bank charges", "bank fee", "bank fees", "merchant fee", "merchant fees", "credit card", "edc"),
		rule(FieldOpexTechnology, "software", "pos", "it", "subscription", "subscriptions", "technology", "system", "systems"),
		rule(FieldOpexEntertainment, "entertainment", "music", "live music", "dj", "band", "performer", "performers"),
		rule(FieldOpexTransport, "transport", "transportation", "delivery", "fuel", "travel", "parking"),
		rule(FieldOpexOther, append([]string{"general"}, otherWords...)...),
	},
	SectionOther: {
		rule(FieldOtherIncome, "income", "interest income", "pendapatan"),
		rule(FieldOtherExpense, append([]string{"expense", "expenses", "interest", "tax", "loss", "beban"}, otherWords...)...),
	},
}

// totalRule recognises a summary row by keyword whatever section is
// current. Rules with needsTotal also require a "total" word in the label.
type totalRule struct {
	field      Field
	subject    *regexp.Regexp
	needsTotal bool
}

var totalWord = keywords("total", "totals", "subtotal", "sub total", "sub-total", "jumlah", "grand total")

// ratioLabel marks percentage rows; ratios are always derived, never read.
// A "%" right after a number is a rate in a money row's name ("Service
// Charge 5%") and does not count.
var ratioLabel = regexp.MustCompile(`(?i)(?:^|[^\d\s])\s*%|\b(?:margin|percentage|pct|ratio)\b`)

var totalRules = []totalRule{
	{FieldGrossSales, keywords("gross sales", "gross revenue", "total sales", "total revenue", "penjualan kotor"), false},
	{FieldNetSales, keywords("net sales", "net revenue", "penjualan bersih"), false},
	{FieldDiscounts, keywords("discount", "discounts", "diskon", "complimentary"), false},
	{FieldCOGSTotal, keywords("cost of goods", "cost of goods sold", "cogs", "cost of sales", "hpp"), true},
	{FieldLaborTotal, keywords("labor", "labour", "payroll", "staff cost", "staff costs", "personnel"), true},
	{FieldFixedTotal, keywords("fixed", "fixed cost", "fixed costs", "fixed expenses"), true},
	{FieldOpexTotal, keywords("opex", "operating expense", "operating expenses", "operating cost", "operating costs", "operational"), true},
	{FieldGrossProfit, keywords("gross profit", "laba kotor"), false},
	{FieldEBITDA, keywords("ebitda"), false},
	{FieldEBIT, keywords("ebit", "operating profit", "operating income"), false},
}

var bareTotalLabel = regexp.MustCompile(`(?i)^\s*(?:grand\s+|sub[\s-]?)?totals?\W*$|^\s*jumlah\W*$`)

// bareTotal is the field a label of just "Total" writes in each section.
var bareTotal = map[Section]Field{
	SectionRevenue: FieldGrossSales,
	SectionCOGS:    FieldCOGSTotal,
	SectionLabor:   FieldLaborTotal,
	SectionFixed:   FieldFixedTotal,
	SectionOpex:    FieldOpexTotal,
}

// matchTotal returns the total field a label writes, if any.
func matchTotal(label string, current Section) (Field, bool) {
	hasTotal := totalWord.MatchString(label)

	for _, r := range totalRules {
		if r.needsTotal && !hasTotal {
			continue
		}

		if r.subject.MatchString(label) {
			return r.field, true
		}
	}

	if bareTotalLabel.MatchString(label) {
		f, ok := bareTotal[current]
		return f, ok
	}

	return "", false
}

// matchCategory returns the first line item of section s the label matches.
func matchCategory(label string, s Section) (Field, bool) {
	for _, r := range categoryRules[s] {
		if r.keywords.MatchString(label) {
			return r.field, true
		}
	}

	return "", false
}

// knownKeywords lists every keyword, used to suggest fixes for unmatched
// labels.
func knownKeywords() []string {
	lists := [][]string{foodWords, wineWords, spiritsWords, cocktailWords, beerWords, softDrinkWords, tobaccoWords, otherWords}

	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}

	out = append(out,
		"13th", "casual", "extra shift", "service charge", "overtime", "bpjs", "training", "salary",
		"rent", "insurance", "depreciation", "license",
		"marketing", "utilities", "maintenance", "supplies", "bank charges", "software", "entertainment", "transport",
		"gross sales", "net sales", "discount", "cost of goods total", "labor total", "fixed total", "opex total",
		"gross profit", "ebitda", "ebit",
	)

	return out
}
