package portfolio

import "github.com/shopspring/decimal"

// rankingCandidate is one (instrument, weight, value) tuple collected for the
// top-holdings ranking.
type rankingCandidate struct {
	InstrumentName string
	NavPercentage  float64
	MarketValue    decimal.Decimal
}

// Aggregator owns every running total of one parse. All mutation goes through
// its named methods so the per-profile accumulation policy stays auditable:
// under SumTotalsAndRows both the printed total lines and the instrument rows
// call AddToCategory, under SumTotalsOnly only the total lines do.
type Aggregator struct {
	categories    map[Category]decimal.Decimal
	categoryOrder []Category
	industries    map[string]decimal.Decimal
	industryOrder []string
	candidates    []rankingCandidate
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		categories: make(map[Category]decimal.Decimal),
		industries: make(map[string]decimal.Decimal),
	}
}

// AddToCategory adds a market value into one category accumulator.
func (a *Aggregator) AddToCategory(cat Category, amount decimal.Decimal) {
	if _, ok := a.categories[cat]; !ok {
		a.categoryOrder = append(a.categoryOrder, cat)
	}
	a.categories[cat] = a.categories[cat].Add(amount)
}

// RecordIndustryInvestment adds a market value under an industry/rating
// label. Empty labels are ignored. Insertion order is kept so equal
// investments rank stably.
func (a *Aggregator) RecordIndustryInvestment(label string, amount decimal.Decimal) {
	if label == "" {
		return
	}
	if _, ok := a.industries[label]; !ok {
		a.industryOrder = append(a.industryOrder, label)
	}
	a.industries[label] = a.industries[label].Add(amount)
}

// RecordRankingCandidate collects one instrument for the top-holdings
// ranking.
func (a *Aggregator) RecordRankingCandidate(name string, navPct float64, value decimal.Decimal) {
	a.candidates = append(a.candidates, rankingCandidate{
		InstrumentName: name,
		NavPercentage:  navPct,
		MarketValue:    value,
	})
}

// CategoryTotal returns one accumulator's current value.
func (a *Aggregator) CategoryTotal(cat Category) decimal.Decimal {
	return a.categories[cat]
}

// CategoryTotals returns the accumulators after applying the profile's
// fold-into-Others step.
func (a *Aggregator) CategoryTotals(p *Profile) map[Category]decimal.Decimal {
	out := make(map[Category]decimal.Decimal, len(a.categories))
	for cat, v := range a.categories {
		out[cat] = v
	}
	for _, cat := range p.FoldIntoOthers {
		v, ok := out[cat]
		if !ok {
			continue
		}
		out[CategoryOthers] = out[CategoryOthers].Add(v)
		delete(out, cat)
	}
	return out
}

// TotalMarketValue sums the folded accumulators over the profile's inclusion
// set. Categories the profile excludes (JM's Others) are reported in the
// summary but not counted here, matching each AMC's own grand-total line.
func (a *Aggregator) TotalMarketValue(p *Profile) decimal.Decimal {
	folded := a.CategoryTotals(p)
	total := decimal.Zero
	for _, cat := range p.TotalIncludes {
		total = total.Add(folded[cat])
	}
	return total
}
