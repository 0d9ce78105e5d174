// Package store is the persistence boundary of the tracker. Every query that
// targets a specific record filters by (id AND user_id) so one user can never
// reach another user's rows, guessed id or not.
package store

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both a missing record and a record owned by
	// someone else; callers cannot tell the two apart.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when registering an email that
	// already owns an account.
	ErrDuplicateEmail = errors.New("email already registered")
)

// sumAmounts adds the amount column of a prepared query in decimal on the Go
// side; SQLite's SUM would coerce the column through binary floats.
func sumAmounts(q *gorm.DB) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := q.Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, fmt.Errorf("sum amounts: %w", err)
	}
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}
