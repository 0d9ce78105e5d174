package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income represents a single earning record owned by one user.
// Amounts are stored as decimal to avoid float drift.
type Income struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Source      string          `gorm:"size:64;not null" json:"source"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
	Description string          `gorm:"size:255" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeSave normalizes the amount to two fraction digits.
func (i *Income) BeforeSave(tx *gorm.DB) error {
	i.Amount = i.Amount.Round(2)
	return nil
}
