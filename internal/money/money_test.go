package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBalance(t *testing.T) {
	cases := []struct {
		income, expenses, want string
	}{
		{"1000.00", "250.50", "749.5"},
		{"100.00", "350.00", "-250"},
		{"0", "0", "0"},
	}
	for _, tc := range cases {
		got := Balance(dec(tc.income), dec(tc.expenses))
		if !got.Equal(dec(tc.want)) {
			t.Errorf("Balance(%s, %s) = %s, want %s", tc.income, tc.expenses, got, tc.want)
		}
	}
}

func TestSavingsRate_ZeroIncome(t *testing.T) {
	got := SavingsRate(decimal.Zero, dec("123.45"))
	if !got.IsZero() {
		t.Errorf("SavingsRate(0, 123.45) = %s, want 0", got)
	}
}

func TestSavingsRate_NoExpenses(t *testing.T) {
	got := SavingsRate(dec("1500.00"), decimal.Zero)
	if !got.Equal(dec("100")) {
		t.Errorf("SavingsRate(1500, 0) = %s, want 100", got)
	}
}

// TestSavingsRate_RoundHalfUp pins the rounding mode: the ratio 0.12445 must
// round to 0.1245 (12.45%), not to 0.1244 the way banker's rounding would.
func TestSavingsRate_RoundHalfUp(t *testing.T) {
	got := SavingsRate(dec("1000.00"), dec("875.55"))
	if !got.Equal(dec("12.45")) {
		t.Errorf("SavingsRate(1000.00, 875.55) = %s, want 12.45", got)
	}
}

func TestSavingsRate_Negative(t *testing.T) {
	// spending more than earned gives a negative rate
	got := SavingsRate(dec("1000.00"), dec("1500.00"))
	if !got.Equal(dec("-50")) {
		t.Errorf("SavingsRate(1000, 1500) = %s, want -50", got)
	}
}

func TestCategoryPercentage(t *testing.T) {
	cases := []struct {
		amount, total, want string
	}{
		{"2400", "2800", "85.71"},
		{"400", "2800", "14.29"},
		{"50", "200", "25"},
		{"1", "3", "33.33"},
	}
	for _, tc := range cases {
		got := CategoryPercentage(dec(tc.amount), dec(tc.total))
		if !got.Equal(dec(tc.want)) {
			t.Errorf("CategoryPercentage(%s, %s) = %s, want %s", tc.amount, tc.total, got, tc.want)
		}
	}
}

func TestCategoryPercentage_ZeroTotal(t *testing.T) {
	got := CategoryPercentage(dec("100"), decimal.Zero)
	if !got.IsZero() {
		t.Errorf("CategoryPercentage(100, 0) = %s, want 0", got)
	}
}
