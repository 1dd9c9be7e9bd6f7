package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestAggregatorCategoryAccumulation(t *testing.T) {
	agg := NewAggregator()
	agg.AddToCategory(CategoryEquity, d(150))
	agg.AddToCategory(CategoryEquity, d(100))
	agg.AddToCategory(CategoryDebt, d(40))

	assert.True(t, agg.CategoryTotal(CategoryEquity).Equal(d(250)))
	assert.True(t, agg.CategoryTotal(CategoryDebt).Equal(d(40)))
	assert.True(t, agg.CategoryTotal(CategoryOthers).IsZero())
}

func TestAggregatorFoldIntoOthers(t *testing.T) {
	p := SBIProfile()
	agg := NewAggregator()
	agg.AddToCategory(CategoryEquity, d(100))
	agg.AddToCategory(CategoryMoneyMarket, d(30))
	agg.AddToCategory(CategoryNetCurrent, d(10))
	agg.AddToCategory(CategoryOthers, d(5))

	folded := agg.CategoryTotals(p)
	assert.True(t, folded[CategoryOthers].Equal(d(45)))
	_, hasMM := folded[CategoryMoneyMarket]
	assert.False(t, hasMM)
	_, hasNC := folded[CategoryNetCurrent]
	assert.False(t, hasNC)

	// total = equity + debt + folded others
	assert.True(t, agg.TotalMarketValue(p).Equal(d(145)))
}

func TestAggregatorTotalInclusionSet(t *testing.T) {
	// JM reports Others but leaves it out of the overall total, mirroring
	// the sheet's own grand-total arithmetic.
	p := JMFinancialProfile()
	agg := NewAggregator()
	agg.AddToCategory(CategoryEquity, d(100))
	agg.AddToCategory(CategoryReverseRepo, d(20))
	agg.AddToCategory(CategoryOthers, d(999))

	assert.True(t, agg.TotalMarketValue(p).Equal(d(120)))
}

func TestAggregatorIndustryInvestments(t *testing.T) {
	agg := NewAggregator()
	agg.RecordIndustryInvestment("Banks", d(100))
	agg.RecordIndustryInvestment("IT", d(60))
	agg.RecordIndustryInvestment("Banks", d(50))
	agg.RecordIndustryInvestment("", d(999)) // empty labels ignored

	top := agg.TopSectors()
	assert.Equal(t, []SectorInvestment{
		{Industry: "Banks", Investment: 150},
		{Industry: "IT", Investment: 60},
	}, top)
}
