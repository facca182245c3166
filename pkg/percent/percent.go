// Package percent provides helpers for working with percentage-denominated
// rates, which is how all growth and tax rates enter this engine
// (e.g. 7.0 means 7%, not 0.07).
package percent

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Fraction converts a percentage to its decimal fraction (7.0 -> 0.07).
func Fraction(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// Of returns pct percent of amount (Of(200000, 25) == 50000).
func Of(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// Clamp limits pct to the inclusive range [min, max].
func Clamp(pct, min, max decimal.Decimal) decimal.Decimal {
	if pct.LessThan(min) {
		return min
	}
	if pct.GreaterThan(max) {
		return max
	}
	return pct
}
