package decimal

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentToFraction converts a percentage (8.2) to a decimal fraction (0.082).
func PercentToFraction(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// FractionToPercent converts a decimal fraction (0.082) to a percentage (8.2).
func FractionToPercent(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Mul(hundred)
}

// Round2 rounds a monetary or percentage value to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinTolerance reports whether a and b differ by at most tol.
func WithinTolerance(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}
