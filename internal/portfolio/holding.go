package portfolio

// Category is the portfolio bucket a holding belongs to. Profiles declare
// which labels map to which category; anything read before the first section
// header lands in CategoryOthers.
type Category string

const (
	CategoryEquity          Category = "Equity"
	CategoryDebt            Category = "Debt"
	CategoryMoneyMarket     Category = "Money Market"
	CategoryCashEquivalents Category = "Cash & Cash Equivalents"
	CategoryGovtSecurities  Category = "Government Securities"
	CategoryReverseRepo     Category = "Reverse Repo/Corporate"
	CategoryAIFUnits        Category = "Alternative Investment Funds Units"
	CategoryNetCurrent      Category = "Net Current Assets"
	CategoryOthers          Category = "Others"
)

// Holding is one normalized instrument row extracted from a disclosure file.
type Holding struct {
	SchemeID        string  `json:"scheme_id"`
	AMCName         string  `json:"amc_name"`
	InstrumentName  string  `json:"instrument_name"`
	ISIN            string  `json:"isin"`
	IndustryRating  string  `json:"industry_rating"`
	Quantity        float64 `json:"quantity"`
	MarketValue     float64 `json:"market_value"`
	PercentageToNAV float64 `json:"percentage_to_nav"`
	YieldPercentage float64 `json:"yield_percentage"`
	YieldToCall     float64 `json:"ytc"`
	InstrumentType  string  `json:"instrument_type"`
}

// SectorInvestment is one entry of the top-sectors ranking.
type SectorInvestment struct {
	Industry   string  `json:"industry"`
	Investment float64 `json:"investment"`
}

// TopHolding is one entry of the top-holdings ranking.
type TopHolding struct {
	InstrumentName string  `json:"instrument_name"`
	NavPercentage  float64 `json:"nav_percentage"`
}

// Summary is the derived per-scheme rollup. It is fully regenerated on every
// successful upload and never edited directly.
type Summary struct {
	SchemeID         string              `json:"scheme_id"`
	AMCName          string              `json:"amc_name"`
	CategoryTotals   map[string]float64  `json:"category_totals"`
	EquityTotal      float64             `json:"equity_total"`
	DebtTotal        float64             `json:"debt_total"`
	OthersTotal      float64             `json:"others_total"`
	TotalMarketValue float64             `json:"total_market_value"`
	EquityPercentage float64             `json:"equity_percentage"`
	DebtPercentage   float64             `json:"debt_percentage"`
	TopSectors       []SectorInvestment  `json:"top_sectors"`
	TopHoldings      []TopHolding        `json:"top_holdings"`
	HoldingCount     int                 `json:"holding_count"`
}
