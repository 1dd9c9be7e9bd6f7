package portfolio

import (
	"context"
	"fmt"
	"io"
	"log"
)

// Processor runs the full extraction pipeline: dispatch by AMC, normalize
// cells, walk rows through the section tracker, persist holdings and the
// derived summary. One call handles one upload end to end; nothing is
// written to the store until the whole table parsed cleanly.
type Processor struct {
	store    Store
	registry *Registry
}

func NewProcessor(store Store, registry *Registry) *Processor {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Processor{store: store, registry: registry}
}

// Registry exposes the profile registry (the upload form lists its names).
func (pr *Processor) Registry() *Registry {
	return pr.registry
}

// Process parses one disclosure file for (amcName, schemeID) and commits a
// full replacement of the scheme's holdings plus a regenerated summary.
// AMCs without a profile return ErrUnrecognizedAMC and write nothing; parse
// failures also leave prior stored state untouched.
func (pr *Processor) Process(ctx context.Context, amcName, schemeID string, r io.Reader, filename string) (*Summary, error) {
	profile, ok := pr.registry.Lookup(amcName)
	if !ok {
		log.Printf("[INFO] no layout profile for AMC %q, scheme %q, skipping extraction", amcName, schemeID)
		return nil, ErrUnrecognizedAMC
	}

	rows, err := ReadTable(r, filename)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	if len(rows) <= profile.HeaderOffset+1 {
		return nil, ErrEmptyTable
	}

	cols, err := ResolveColumns(profile, rows[profile.HeaderOffset])
	if err != nil {
		return nil, err
	}

	agg := NewAggregator()
	holdings := make([]Holding, 0, len(rows))
	var st State

	for _, row := range rows[profile.HeaderOffset+1:] {
		label := cols.cellFor(row, FieldName)
		var kind RowKind
		st, kind = ClassifyRow(st, profile, label)

		switch kind {
		case RowTerminal:
			// rows past the terminal are never consumed
		case RowSectionHeader, RowSkip:
			continue
		case RowTotal:
			agg.AddToCategory(st.CurrentCategory(), ParseAmount(cols.cellFor(row, FieldMarketValue)))
		case RowData:
			h, ok := extractHolding(profile, cols, row, st, amcName, schemeID)
			if !ok {
				continue
			}
			holdings = append(holdings, h)

			value := ParseAmount(cols.cellFor(row, FieldMarketValue))
			if profile.TotalsPolicy == SumTotalsAndRows {
				agg.AddToCategory(st.CurrentCategory(), value)
			}
			agg.RecordIndustryInvestment(SafeString(cols.cellFor(row, FieldRatingIndustry)), value)
			agg.RecordRankingCandidate(h.InstrumentName, h.PercentageToNAV, value)
		}
		if st.Terminated {
			break
		}
	}

	if !st.Terminated {
		return nil, ErrNoTerminalRow
	}

	summary := buildSummary(profile, agg, amcName, schemeID, len(holdings))

	if _, err := pr.store.GetOrCreateUpload(ctx, amcName, schemeID); err != nil {
		return nil, fmt.Errorf("upload record: %w", err)
	}
	if err := pr.store.ReplaceHoldings(ctx, schemeID, holdings); err != nil {
		return nil, fmt.Errorf("replace holdings: %w", err)
	}
	if err := pr.store.SaveSummary(ctx, summary); err != nil {
		return nil, fmt.Errorf("save summary: %w", err)
	}

	log.Printf("[INFO] processed %s / %s: %d holdings, total market value %.2f",
		amcName, schemeID, len(holdings), summary.TotalMarketValue)
	return summary, nil
}

// extractHolding builds the Holding for one data row, or reports false when
// the profile's discriminator is empty (blank separators, partial rows).
func extractHolding(p *Profile, cols columnIndex, row []string, st State, amcName, schemeID string) (Holding, bool) {
	isin := SafeString(cols.cellFor(row, FieldISIN))
	quantity := ParseFloat(cols.cellFor(row, FieldQuantity))

	switch p.Discriminator {
	case DiscriminatorISIN:
		if isin == "" {
			return Holding{}, false
		}
	case DiscriminatorQuantity:
		if quantity == 0 {
			return Holding{}, false
		}
	}

	value, _ := ParseAmount(cols.cellFor(row, FieldMarketValue)).Float64()
	return Holding{
		SchemeID:        schemeID,
		AMCName:         amcName,
		InstrumentName:  SafeString(cols.cellFor(row, FieldName)),
		ISIN:            isin,
		IndustryRating:  SafeString(cols.cellFor(row, FieldIndustry)),
		Quantity:        quantity,
		MarketValue:     value,
		PercentageToNAV: ParsePercent(cols.cellFor(row, FieldPctNAV)),
		YieldPercentage: ParsePercent(cols.cellFor(row, FieldYield)),
		YieldToCall:     ParsePercent(cols.cellFor(row, FieldYTC)),
		InstrumentType:  string(st.CurrentCategory()),
	}, true
}

func buildSummary(p *Profile, agg *Aggregator, amcName, schemeID string, holdingCount int) *Summary {
	folded := agg.CategoryTotals(p)
	total := agg.TotalMarketValue(p)

	categoryTotals := make(map[string]float64, len(folded))
	for cat, v := range folded {
		f, _ := v.Float64()
		categoryTotals[string(cat)] = f
	}

	equity, _ := folded[CategoryEquity].Float64()
	debt, _ := folded[CategoryDebt].Float64()
	others, _ := folded[CategoryOthers].Float64()
	totalF, _ := total.Float64()

	return &Summary{
		SchemeID:         schemeID,
		AMCName:          amcName,
		CategoryTotals:   categoryTotals,
		EquityTotal:      equity,
		DebtTotal:        debt,
		OthersTotal:      others,
		TotalMarketValue: totalF,
		EquityPercentage: PercentageOf(folded[CategoryEquity], total),
		DebtPercentage:   PercentageOf(folded[CategoryDebt], total),
		TopSectors:       agg.TopSectors(),
		TopHoldings:      agg.TopHoldings(),
		HoldingCount:     holdingCount,
	}
}
