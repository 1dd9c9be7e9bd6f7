package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	p, ok := r.Lookup("JM Financial Mutual Fund")
	require.True(t, ok)
	assert.Equal(t, 3, p.HeaderOffset)
	assert.Equal(t, SumTotalsAndRows, p.TotalsPolicy)

	p, ok = r.Lookup("  sbi mutual fund ")
	require.True(t, ok)
	assert.Equal(t, 5, p.HeaderOffset)
	assert.Equal(t, SumTotalsOnly, p.TotalsPolicy)

	_, ok = r.Lookup("Unknown AMC")
	assert.False(t, ok)
}

func TestRegistryRegisterNewProfile(t *testing.T) {
	r := NewRegistry()
	r.Register(&Profile{AMC: "Test AMC"})
	r.Register(&Profile{AMC: "Test AMC"}) // re-register replaces, no dup name
	r.Register(SBIProfile())

	assert.Equal(t, []string{"Test AMC", "SBI Mutual Fund"}, r.Names())
}

func TestProfileSectionMatchOrder(t *testing.T) {
	p := SBIProfile()

	cat, ok := p.MatchSection("net current assets")
	require.True(t, ok)
	assert.Equal(t, CategoryNetCurrent, cat)

	// "other" is declared after "net current asset" so it does not shadow it
	cat, ok = p.MatchSection("others")
	require.True(t, ok)
	assert.Equal(t, CategoryOthers, cat)
}

func TestProfileTerminals(t *testing.T) {
	p := JMFinancialProfile()
	assert.True(t, p.MatchTerminal("grand total"))
	assert.True(t, p.MatchTerminal("net assets"))
	assert.True(t, p.MatchTerminal("total net assets"))
	assert.False(t, p.MatchTerminal("equity total"))
}
