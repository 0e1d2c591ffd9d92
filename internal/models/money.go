package models

import (
	"github.com/shopspring/decimal"
)

// NonNegative returns the amount, or zero when the amount is zero or negative.
// Aggregations use it so that malformed entries contribute nothing.
func NonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsPositive() {
		return amount
	}
	return decimal.Zero
}

// Clamp bounds value to the closed interval [lo, hi].
func Clamp(value, lo, hi decimal.Decimal) decimal.Decimal {
	if value.LessThan(lo) {
		return lo
	}
	if value.GreaterThan(hi) {
		return hi
	}
	return value
}

// Ratio returns num/den, or zero when den is not positive.
func Ratio(num, den decimal.Decimal) decimal.Decimal {
	if !den.IsPositive() {
		return decimal.Zero
	}
	return num.Div(den)
}
