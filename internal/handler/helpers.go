package handler

import (
	"fmt"
	"time"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/datewindow"

	"github.com/shopspring/decimal"
)

// parseDate accepts the date formats clients send; the bare date form is the
// documented one.
func parseDate(s string) (time.Time, error) {
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return datewindow.DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
}

// parseAmount parses a positive monetary amount without going through floats.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive")
	}
	return amount.Round(2), nil
}
