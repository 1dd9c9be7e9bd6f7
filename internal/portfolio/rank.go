package portfolio

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

const topN = 5

// TopSectors ranks industry investments descending by value, stable under
// equal values (insertion order), truncated to five. Investments round to 2
// decimals the way the disclosure figures are quoted.
func (a *Aggregator) TopSectors() []SectorInvestment {
	type pair struct {
		label string
		value decimal.Decimal
	}
	pairs := make([]pair, 0, len(a.industryOrder))
	for _, label := range a.industryOrder {
		pairs = append(pairs, pair{label, a.industries[label]})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].value.GreaterThan(pairs[j].value)
	})
	if len(pairs) > topN {
		pairs = pairs[:topN]
	}
	out := make([]SectorInvestment, 0, len(pairs))
	for _, p := range pairs {
		v, _ := p.value.Round(2).Float64()
		out = append(out, SectorInvestment{Industry: p.label, Investment: v})
	}
	return out
}

// TopHoldings ranks collected instruments descending by NAV weight, stable,
// truncated to five.
func (a *Aggregator) TopHoldings() []TopHolding {
	ranked := make([]rankingCandidate, len(a.candidates))
	copy(ranked, a.candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NavPercentage > ranked[j].NavPercentage
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	out := make([]TopHolding, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, TopHolding{
			InstrumentName: c.InstrumentName,
			NavPercentage:  round2(c.NavPercentage),
		})
	}
	return out
}

// PercentageOf computes part/total*100 with the total floored at 1, so a
// zero or negative grand total yields 0% instead of dividing by zero.
func PercentageOf(part, total decimal.Decimal) float64 {
	t, _ := total.Float64()
	if t <= 0 {
		t = 1
	}
	p, _ := part.Float64()
	return p / t * 100
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
