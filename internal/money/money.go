// Package money holds the pure monetary arithmetic behind the analytics
// reports. Every computation stays in decimal; ratios are carried at four
// fraction digits with half-up rounding before being expressed as percentages.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Balance returns income minus expenses. May be negative.
func Balance(income, expenses decimal.Decimal) decimal.Decimal {
	return income.Sub(expenses)
}

// SavingsRate returns (income - expenses) / income as a percentage.
// The ratio is rounded half-up to 4 fraction digits before the x100,
// so 0.12445 becomes 12.45, not 12.44. Zero income yields zero.
func SavingsRate(income, expenses decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	return income.Sub(expenses).DivRound(income, 4).Mul(hundred)
}

// CategoryPercentage returns amount / total as a percentage, rounded the
// same way as SavingsRate. Zero total yields zero.
func CategoryPercentage(amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return amount.DivRound(total, 4).Mul(hundred)
}
