package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense represents a single spending record owned by one user.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category    string          `gorm:"size:32;index;not null" json:"category"`
	Description string          `gorm:"size:255" json:"description"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeSave normalizes the amount to two fraction digits.
func (e *Expense) BeforeSave(tx *gorm.DB) error {
	e.Amount = e.Amount.Round(2)
	return nil
}
