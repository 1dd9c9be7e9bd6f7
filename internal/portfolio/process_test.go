package portfolio

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jmCSV = `JM Financial Mutual Fund
Monthly Portfolio Statement
,,,,,,,
Name of the Instruments,ISIN,Industry/Rating,Rating / Industry^,Quantity,Market Value (Rs. In Lakhs),% age to NAV,Yield %
Equity & Equity related instruments,,,,,,,
Infosys Ltd,INE001,IT - Software,IT - Software,10,100,5,
HDFC Bank Ltd,INE002,Banks,Banks,5,50,2,
Subtotal Equity,,,,,999,,
Equity Total,,,,,150,,
Grand Total,,,,,150,,
Phantom Instrument,INE999,Stale,Stale,1,77,9,
`

const sbiCSV = `SBI Mutual Fund
Portfolio Disclosure
,,,,,,,
,,,,,,,
,,,,,,,
Name of the Instrument / Issuer,ISIN,Industry / Rating,Rating / Industry^,Quantity,Market value (Rs. in Lakhs),% to AUM,YTM %
Equity,,,,,,,
Reliance Industries,INE010,Petroleum,Petroleum,20,100,4,
Tata Motors,INE020,Auto,Auto,8,50,1.5,
Total,,,,,150,,
Money Market Instruments,,,,,,,
91 Day T-Bill,INE030,Sovereign,Sovereign,100,30,0.5,6.8
Total,,,,,30,,
Net Current Assets,,,,,,,
Total,,,,,10,,
Grand Total,,,,,190,,
`

func processFixture(t *testing.T, amc, scheme, csv string) (*Summary, *MemStore) {
	t.Helper()
	store := NewMemStore()
	pr := NewProcessor(store, DefaultRegistry())
	summary, err := pr.Process(context.Background(), amc, scheme, strings.NewReader(csv), "disclosure.csv")
	require.NoError(t, err)
	return summary, store
}

func TestProcessJMDoubleCountingPolicy(t *testing.T) {
	summary, store := processFixture(t, "JM Financial Mutual Fund", "JM-LIQ", jmCSV)

	// printed total row (150) plus both instrument rows (100 + 50)
	assert.Equal(t, 300.0, summary.CategoryTotals["Equity"])
	assert.Equal(t, 300.0, summary.EquityTotal)
	assert.Equal(t, 300.0, summary.TotalMarketValue)
	assert.Equal(t, 100.0, summary.EquityPercentage)
	assert.Equal(t, 0.0, summary.DebtPercentage)

	holdings, err := store.GetHoldings(context.Background(), "JM-LIQ")
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	assert.Equal(t, "Infosys Ltd", holdings[0].InstrumentName)
	assert.Equal(t, "INE001", holdings[0].ISIN)
	assert.Equal(t, "Equity", holdings[0].InstrumentType)
	assert.Equal(t, 100.0, holdings[0].MarketValue)

	require.Len(t, summary.TopHoldings, 2)
	assert.Equal(t, TopHolding{InstrumentName: "Infosys Ltd", NavPercentage: 5}, summary.TopHoldings[0])
	assert.Equal(t, TopHolding{InstrumentName: "HDFC Bank Ltd", NavPercentage: 2}, summary.TopHoldings[1])

	require.Len(t, summary.TopSectors, 2)
	assert.Equal(t, SectorInvestment{Industry: "IT - Software", Investment: 100}, summary.TopSectors[0])
}

func TestProcessJMSubtotalAndTerminalRows(t *testing.T) {
	summary, store := processFixture(t, "JM Financial Mutual Fund", "JM-LIQ", jmCSV)

	// the 999 subtotal row never reaches any accumulator
	assert.NotEqual(t, 1299.0, summary.CategoryTotals["Equity"])

	// the phantom row after Grand Total is never emitted
	holdings, _ := store.GetHoldings(context.Background(), "JM-LIQ")
	for _, h := range holdings {
		assert.NotEqual(t, "INE999", h.ISIN)
	}
}

func TestProcessSBITotalsOnlyPolicy(t *testing.T) {
	summary, store := processFixture(t, "SBI Mutual Fund", "SBI-BLUE", sbiCSV)

	// printed totals only: instrument rows do not feed the accumulators
	assert.Equal(t, 150.0, summary.CategoryTotals["Equity"])
	assert.Equal(t, 150.0, summary.EquityTotal)
	// Money Market (30) and Net Current Assets (10) fold into Others
	assert.Equal(t, 40.0, summary.OthersTotal)
	assert.Equal(t, 190.0, summary.TotalMarketValue)
	assert.InDelta(t, 78.947, summary.EquityPercentage, 0.001)

	holdings, err := store.GetHoldings(context.Background(), "SBI-BLUE")
	require.NoError(t, err)
	assert.Len(t, holdings, 3)
	// category reflects the section open at the row, never corrected later
	assert.Equal(t, "Money Market", holdings[2].InstrumentType)
	assert.Equal(t, 6.8, holdings[2].YieldPercentage)
}

func TestProcessIdempotent(t *testing.T) {
	store := NewMemStore()
	pr := NewProcessor(store, DefaultRegistry())

	first, err := pr.Process(context.Background(), "SBI Mutual Fund", "SBI-BLUE", strings.NewReader(sbiCSV), "a.csv")
	require.NoError(t, err)
	second, err := pr.Process(context.Background(), "SBI Mutual Fund", "SBI-BLUE", strings.NewReader(sbiCSV), "a.csv")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	holdings, _ := store.GetHoldings(context.Background(), "SBI-BLUE")
	assert.Len(t, holdings, 3) // replaced, not appended

	saved, _ := store.GetSummary(context.Background(), "SBI-BLUE")
	assert.Equal(t, second.TotalMarketValue, saved.TotalMarketValue)
}

func TestProcessUnrecognizedAMC(t *testing.T) {
	store := NewMemStore()
	pr := NewProcessor(store, DefaultRegistry())
	_, err := pr.Process(context.Background(), "Vanguard", "VG-1", strings.NewReader(jmCSV), "a.csv")
	assert.ErrorIs(t, err, ErrUnrecognizedAMC)

	holdings, _ := store.GetHoldings(context.Background(), "VG-1")
	assert.Empty(t, holdings)
}

func TestProcessMissingRequiredColumn(t *testing.T) {
	csv := `x
x
,,,
Name of the Instruments,ISIN,Quantity
Equity,,
Infosys Ltd,INE001,10
Grand Total,,
`
	store := NewMemStore()
	pr := NewProcessor(store, DefaultRegistry())
	_, err := pr.Process(context.Background(), "JM Financial Mutual Fund", "JM-LIQ", strings.NewReader(csv), "a.csv")
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)

	// prior holdings stay intact on failure
	holdings, _ := store.GetHoldings(context.Background(), "JM-LIQ")
	assert.Empty(t, holdings)
}

func TestProcessNoTerminalRowAborts(t *testing.T) {
	csv := strings.Replace(jmCSV, "Grand Total,,,,,150,,\n", "", 1)
	csv = strings.Replace(csv, "Phantom Instrument,INE999,Stale,Stale,1,77,9,\n", "", 1)

	store := NewMemStore()
	pr := NewProcessor(store, DefaultRegistry())
	_, err := pr.Process(context.Background(), "JM Financial Mutual Fund", "JM-LIQ", strings.NewReader(csv), "a.csv")
	assert.ErrorIs(t, err, ErrNoTerminalRow)

	holdings, _ := store.GetHoldings(context.Background(), "JM-LIQ")
	assert.Empty(t, holdings)
}

func TestProcessZeroTotalPercentageGuard(t *testing.T) {
	csv := `x
x
,,,
Name of the Instruments,ISIN,Industry/Rating,Rating / Industry^,Quantity,Market Value (Rs. In Lakhs),% age to NAV,Yield %
Equity & Equity related instruments,,,,,,,
Grand Total,,,,,0,,
`
	summary, _ := processFixture(t, "JM Financial Mutual Fund", "JM-EMPTY", csv)
	assert.Equal(t, 0.0, summary.TotalMarketValue)
	assert.Equal(t, 0.0, summary.EquityPercentage)
	assert.Equal(t, 0.0, summary.DebtPercentage)
	assert.Equal(t, 0, summary.HoldingCount)
}

func TestProcessRowsWithoutISINDropped(t *testing.T) {
	csv := `x
x
,,,
Name of the Instruments,ISIN,Industry/Rating,Rating / Industry^,Quantity,Market Value (Rs. In Lakhs),% age to NAV,Yield %
Equity & Equity related instruments,,,,,,,
Listed awaiting listing,,,,,,,
Infosys Ltd,INE001,IT,IT,10,100,5,
Grand Total,,,,,100,,
`
	summary, store := processFixture(t, "JM Financial Mutual Fund", "JM-LIQ2", csv)
	holdings, _ := store.GetHoldings(context.Background(), "JM-LIQ2")
	assert.Len(t, holdings, 1)
	// the ISIN-less row contributes nothing to the accumulators either
	assert.Equal(t, 100.0, summary.CategoryTotals["Equity"])
}
