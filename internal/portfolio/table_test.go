package portfolio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTableCSV(t *testing.T) {
	rows, err := ReadTable(strings.NewReader("a,b,c\n1,2,3\n"), "portfolio.csv")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"1", "2", "3"}}, rows)
}

func TestReadTableCSVSemicolonAndBOM(t *testing.T) {
	rows, err := ReadTable(strings.NewReader("\xef\xbb\xbfa;b\n1;2\n"), "portfolio.csv")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows)
}

func TestReadTableUnsupportedType(t *testing.T) {
	_, err := ReadTable(strings.NewReader("x"), "portfolio.pdf")
	assert.Error(t, err)
}

func TestResolveColumnsAliases(t *testing.T) {
	p := JMFinancialProfile()
	header := []string{
		"Name of the Instruments", "ISIN", "Industry/Rating", "Rating / Industry^",
		"Quantity/Face Value", "Market Value\n(Rs. In Lakhs)", "% age to NAV", "Yield %",
	}
	cols, err := ResolveColumns(p, header)
	require.NoError(t, err)

	row := []string{"Infosys", "INE009A01021", "IT", "IT", "10", "100.5", "5", "7.1%"}
	assert.Equal(t, "Infosys", cols.cellFor(row, FieldName))
	assert.Equal(t, "INE009A01021", cols.cellFor(row, FieldISIN))
	// Quantity/Face Value alias resolves to the canonical quantity field
	assert.Equal(t, "10", cols.cellFor(row, FieldQuantity))
	// newline-wrapped header cell still matches
	assert.Equal(t, "100.5", cols.cellFor(row, FieldMarketValue))
}

func TestResolveColumnsPrefixFallback(t *testing.T) {
	p := SBIProfile()
	header := []string{"Name of the Instrument / Issuer", "ISIN", "Market Value(Rs.Lakh)", "% to AUM"}
	cols, err := ResolveColumns(p, header)
	require.NoError(t, err)
	row := []string{"SBI Cash", "INE123", "55", "1"}
	assert.Equal(t, "55", cols.cellFor(row, FieldMarketValue))
}

func TestResolveColumnsMissingRequired(t *testing.T) {
	p := JMFinancialProfile()
	_, err := ResolveColumns(p, []string{"Name of the Instruments", "ISIN", "Quantity"})
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, FieldMarketValue, missing.Field)
}

func TestCellForAbsentColumn(t *testing.T) {
	p := SBIProfile()
	// YTC column absent in this layout variant: no error, empty cell
	header := []string{"Name of the Instrument / Issuer", "ISIN", "Market value (Rs. in Lakhs)"}
	cols, err := ResolveColumns(p, header)
	require.NoError(t, err)
	assert.Equal(t, "", cols.cellFor([]string{"x", "y", "1"}, FieldYTC))
	// short row
	assert.Equal(t, "", cols.cellFor([]string{"x"}, FieldMarketValue))
}
