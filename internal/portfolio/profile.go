package portfolio

import (
	"strings"
	"sync"
)

// Field names a canonical column the pipeline reads. Each AMC's sheet labels
// these differently; the profile's alias table does the mapping.
type Field string

const (
	FieldName           Field = "instrument_name"
	FieldISIN           Field = "isin"
	FieldIndustry       Field = "industry_rating"
	FieldRatingIndustry Field = "rating_industry"
	FieldQuantity       Field = "quantity"
	FieldMarketValue    Field = "market_value"
	FieldPctNAV         Field = "percentage_to_nav"
	FieldYield          Field = "yield_percentage"
	FieldYTC            Field = "ytc"
)

// TotalsPolicy fixes how a category accumulator is fed. The source sheets
// disagree between AMCs and the two behaviors must not be unified: JM's
// sheets are reconciled by summing BOTH the printed "total" rows and the
// per-instrument rows (so a category total can exceed a naive instrument
// sum; that is the intended figure, not a bug); SBI's reconcile against the
// printed total rows alone.
type TotalsPolicy int

const (
	SumTotalsOnly TotalsPolicy = iota
	SumTotalsAndRows
)

// Discriminator picks the cell that decides whether a data row is a real
// holding. Rows with an empty discriminator are dropped silently.
type Discriminator int

const (
	DiscriminatorISIN Discriminator = iota
	DiscriminatorQuantity
)

// SectionPattern maps a row-label pattern to a category. Patterns are checked
// in declared order, first match wins. Prefix patterns anchor at the start of
// the lowercased label, substring patterns match anywhere.
type SectionPattern struct {
	Pattern   string
	Substring bool
	Category  Category
}

// Profile is the declarative layout description for one AMC's disclosure
// format: where the header row sits, what the columns are called, which
// labels open a section or terminate the table, and how totals accumulate.
type Profile struct {
	AMC          string
	HeaderOffset int
	// Columns maps each canonical field to its alias spellings, tried in
	// order. Aliases match case-insensitively after newline collapsing.
	Columns map[Field][]string
	// PrefixColumns maps a field to a lowercase prefix tried when no alias
	// matched (SBI renames its market value column between months).
	PrefixColumns map[Field]string
	Sections      []SectionPattern
	// Terminals are label prefixes that stop consumption ("grand total",
	// "net assets", ...).
	Terminals     []string
	TotalsPolicy  TotalsPolicy
	Discriminator Discriminator
	// TotalIncludes lists the categories summed into the overall market
	// value. Categories outside the set (e.g. JM's Others) are reported but
	// not counted, mirroring each AMC's own grand-total arithmetic.
	TotalIncludes []Category
	// FoldIntoOthers lists categories whose accumulator is merged into
	// Others before the overall total is computed (SBI folds Money Market
	// and Net Current Assets).
	FoldIntoOthers []Category
}

// RequiredFields returns the canonical fields this pipeline cannot run
// without. Missing any of them aborts the upload.
func (p *Profile) RequiredFields() []Field {
	return []Field{FieldName, FieldMarketValue}
}

// MatchSection resolves a lowercased trimmed label against the declared
// section patterns.
func (p *Profile) MatchSection(label string) (Category, bool) {
	for _, sp := range p.Sections {
		if sp.Substring {
			if strings.Contains(label, sp.Pattern) {
				return sp.Category, true
			}
		} else if strings.HasPrefix(label, sp.Pattern) {
			return sp.Category, true
		}
	}
	return "", false
}

// MatchTerminal reports whether the label ends the table.
func (p *Profile) MatchTerminal(label string) bool {
	for _, t := range p.Terminals {
		if strings.HasPrefix(label, t) {
			return true
		}
	}
	return false
}

// Registry maps AMC names to layout profiles. New AMCs are added by
// registering a profile, never by branching inside the pipeline.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]*Profile)}
}

func (r *Registry) Register(p *Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(strings.TrimSpace(p.AMC))
	if _, exists := r.profiles[key]; !exists {
		r.order = append(r.order, p.AMC)
	}
	r.profiles[key] = p
}

// Lookup returns the profile for an AMC name, or false for AMCs with no
// registered layout (those uploads become no-ops, not failures).
func (r *Registry) Lookup(amcName string) (*Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[strings.ToLower(strings.TrimSpace(amcName))]
	return p, ok
}

// Names returns registered AMC names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRegistry returns the registry with the built-in AMC profiles.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(JMFinancialProfile())
	r.Register(SBIProfile())
	return r
}

// JMFinancialProfile describes the JM Financial Mutual Fund monthly
// disclosure: column header on the 4th sheet row, ISIN-gated data rows, and
// the totals-and-rows accumulation its grand total reconciles against.
func JMFinancialProfile() *Profile {
	return &Profile{
		AMC:          "JM Financial Mutual Fund",
		HeaderOffset: 3,
		Columns: map[Field][]string{
			FieldName:           {"Name of the Instruments", "Name of the Instrument"},
			FieldISIN:           {"ISIN"},
			FieldIndustry:       {"Industry/Rating", "Industry / Rating"},
			FieldRatingIndustry: {"Rating / Industry^", "Rating/Industry"},
			FieldQuantity:       {"Quantity", "Quantity/Face Value"},
			FieldMarketValue:    {"Market Value (Rs. In Lakhs)", "Market value (Rs. in Lakhs)"},
			FieldPctNAV:         {"% age to NAV", "% to NAV"},
			FieldYield:          {"Yield %"},
			FieldYTC:            {"^YTC (AT1/Tier 2 bonds)"},
		},
		PrefixColumns: map[Field]string{
			FieldMarketValue: "market value",
		},
		Sections: []SectionPattern{
			{Pattern: "equity", Category: CategoryEquity},
			{Pattern: "debt", Category: CategoryDebt},
			{Pattern: "money market", Category: CategoryMoneyMarket},
			{Pattern: "cash & cash equivalents", Category: CategoryCashEquivalents},
			{Pattern: "government securities", Category: CategoryGovtSecurities},
			{Pattern: "reverse repo", Substring: true, Category: CategoryReverseRepo},
			{Pattern: "corporate debt repo", Substring: true, Category: CategoryReverseRepo},
			{Pattern: "treps", Substring: true, Category: CategoryReverseRepo},
			{Pattern: "alternative investment", Category: CategoryAIFUnits},
			{Pattern: "other", Category: CategoryOthers},
		},
		Terminals:     []string{"grand total", "total net assets", "net assets"},
		TotalsPolicy:  SumTotalsAndRows,
		Discriminator: DiscriminatorISIN,
		TotalIncludes: []Category{
			CategoryEquity,
			CategoryDebt,
			CategoryMoneyMarket,
			CategoryCashEquivalents,
			CategoryGovtSecurities,
			CategoryReverseRepo,
			CategoryAIFUnits,
		},
	}
}

// SBIProfile describes the SBI Mutual Fund disclosure: header on the 6th
// sheet row, printed total rows are the only accumulator feed, and Money
// Market plus Net Current Assets fold into Others before the overall total.
func SBIProfile() *Profile {
	return &Profile{
		AMC:          "SBI Mutual Fund",
		HeaderOffset: 5,
		Columns: map[Field][]string{
			FieldName:           {"Name of the Instrument / Issuer", "Name of the Instrument"},
			FieldISIN:           {"ISIN"},
			FieldIndustry:       {"Industry / Rating", "Industry/Rating"},
			FieldRatingIndustry: {"Rating / Industry^", "Rating/Industry"},
			FieldQuantity:       {"Quantity", "Quantity/Face Value"},
			FieldMarketValue:    {"Market value (Rs. in Lakhs)", "Market Value (Rs. In Lakhs)"},
			FieldPctNAV:         {"% to AUM", "% age to NAV"},
			FieldYield:          {"YTM %"},
			FieldYTC:            {"YTC %##"},
		},
		PrefixColumns: map[Field]string{
			FieldMarketValue: "market value",
		},
		Sections: []SectionPattern{
			{Pattern: "equity", Category: CategoryEquity},
			{Pattern: "debt", Category: CategoryDebt},
			{Pattern: "money market", Category: CategoryMoneyMarket},
			{Pattern: "net current asset", Category: CategoryNetCurrent},
			{Pattern: "other", Category: CategoryOthers},
		},
		Terminals:     []string{"grand total", "total net assets"},
		TotalsPolicy:  SumTotalsOnly,
		Discriminator: DiscriminatorISIN,
		TotalIncludes: []Category{
			CategoryEquity,
			CategoryDebt,
			CategoryOthers,
		},
		FoldIntoOthers: []Category{
			CategoryMoneyMarket,
			CategoryNetCurrent,
		},
	}
}
