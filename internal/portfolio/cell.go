package portfolio

import (
	"strings"

	"github.com/shopspring/decimal"
)

// The disclosure sheets are hand-authored: amounts carry thousands
// separators, yields carry a trailing %, blanks show up as "NIL", "nan",
// "#N/A" or "-". Every coercion here recovers locally; nothing in this file
// returns an error.

var nanTokens = map[string]bool{
	"":     true,
	"nan":  true,
	"n/a":  true,
	"#n/a": true,
	"-":    true,
	"--":   true,
}

// SafeString trims a raw cell and maps NaN-like placeholders to "".
func SafeString(raw string) string {
	s := strings.TrimSpace(raw)
	if nanTokens[strings.ToLower(s)] {
		return ""
	}
	return s
}

// ParseAmount coerces a money cell to a decimal. "NIL" is the sheets' own
// zero sentinel; thousands separators are tolerated. Anything unparseable
// is 0.
func ParseAmount(raw string) decimal.Decimal {
	s := SafeString(raw)
	if s == "" || s == "NIL" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseFloat is ParseAmount for non-money numerics (quantities, weights).
func ParseFloat(raw string) float64 {
	f, _ := ParseAmount(raw).Float64()
	return f
}

// ParsePercent coerces a "Yield %" / "YTM %" style cell: trailing % stripped,
// unparseable → 0.
func ParsePercent(raw string) float64 {
	s := SafeString(raw)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" || s == "NIL" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
