package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSafeString(t *testing.T) {
	assert.Equal(t, "Infosys Ltd", SafeString("  Infosys Ltd  "))
	assert.Equal(t, "", SafeString(""))
	assert.Equal(t, "", SafeString("  "))
	assert.Equal(t, "", SafeString("nan"))
	assert.Equal(t, "", SafeString("NaN"))
	assert.Equal(t, "", SafeString("#N/A"))
	assert.Equal(t, "", SafeString("-"))
	// NIL is the sheets' zero sentinel, not a blank
	assert.Equal(t, "NIL", SafeString("NIL"))
}

func TestParseAmount(t *testing.T) {
	assert.True(t, ParseAmount("NIL").IsZero())
	assert.True(t, ParseAmount("").IsZero())
	assert.True(t, ParseAmount("not a number").IsZero())
	assert.True(t, ParseAmount("nan").IsZero())

	assert.True(t, ParseAmount("1234.56").Equal(decimal.NewFromFloat(1234.56)))
	assert.True(t, ParseAmount("1,23,456.78").Equal(decimal.NewFromFloat(123456.78)))
	assert.True(t, ParseAmount(" 42 ").Equal(decimal.NewFromInt(42)))
	assert.True(t, ParseAmount("-15.5").Equal(decimal.NewFromFloat(-15.5)))
}

func TestParsePercent(t *testing.T) {
	assert.Equal(t, 7.45, ParsePercent("7.45%"))
	assert.Equal(t, 7.45, ParsePercent("7.45"))
	assert.Equal(t, 7.45, ParsePercent(" 7.45 % "))
	assert.Equal(t, 0.0, ParsePercent("NIL"))
	assert.Equal(t, 0.0, ParsePercent(""))
	assert.Equal(t, 0.0, ParsePercent("#"))
	assert.Equal(t, 0.0, ParsePercent("nan"))
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 100.0, ParseFloat("100"))
	assert.Equal(t, 1500.0, ParseFloat("1,500"))
	assert.Equal(t, 0.0, ParseFloat("NIL"))
	assert.Equal(t, 0.0, ParseFloat(""))
}
