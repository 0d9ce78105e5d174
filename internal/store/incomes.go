package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeStore persists income records, always scoped to their owner.
type IncomeStore struct {
	DB *gorm.DB
}

func NewIncomeStore(db *gorm.DB) *IncomeStore {
	return &IncomeStore{DB: db}
}

func (s *IncomeStore) Create(income *models.Income) error {
	if err := s.DB.Create(income).Error; err != nil {
		return fmt.Errorf("create income: %w", err)
	}
	return nil
}

// ListByOwner returns all incomes of one user, newest first.
func (s *IncomeStore) ListByOwner(owner uint) ([]models.Income, error) {
	var incomes []models.Income
	err := s.DB.Where("user_id = ?", owner).
		Order("date DESC, created_at DESC").
		Find(&incomes).Error
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	return incomes, nil
}

// ListByOwnerSource filters by the income source label.
func (s *IncomeStore) ListByOwnerSource(owner uint, source string) ([]models.Income, error) {
	var incomes []models.Income
	err := s.DB.Where("user_id = ? AND source = ?", owner, source).
		Order("date DESC, created_at DESC").
		Find(&incomes).Error
	if err != nil {
		return nil, fmt.Errorf("list incomes by source: %w", err)
	}
	return incomes, nil
}

// ListByOwnerRange returns incomes dated within [from, to].
func (s *IncomeStore) ListByOwnerRange(owner uint, from, to time.Time) ([]models.Income, error) {
	var incomes []models.Income
	err := s.DB.Where("user_id = ? AND date >= ? AND date <= ?", owner, from, to).
		Order("date DESC").
		Find(&incomes).Error
	if err != nil {
		return nil, fmt.Errorf("list incomes by range: %w", err)
	}
	return incomes, nil
}

// FindByIDOwned fetches one income by (id, owner).
func (s *IncomeStore) FindByIDOwned(id, owner uint) (*models.Income, error) {
	var income models.Income
	err := s.DB.Where("id = ? AND user_id = ?", id, owner).First(&income).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find income: %w", err)
	}
	return &income, nil
}

// Update rewrites the mutable fields of an income. Matching zero rows is a
// failure, not a no-op.
func (s *IncomeStore) Update(income *models.Income) error {
	res := s.DB.Model(&models.Income{}).
		Where("id = ? AND user_id = ?", income.ID, income.UserID).
		Updates(map[string]interface{}{
			"amount":      income.Amount.Round(2),
			"source":      income.Source,
			"date":        income.Date,
			"description": income.Description,
		})
	if res.Error != nil {
		return fmt.Errorf("update income: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one income by (id, owner). Matching zero rows is a failure.
func (s *IncomeStore) Delete(id, owner uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", id, owner).Delete(&models.Income{})
	if res.Error != nil {
		return fmt.Errorf("delete income: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SumByOwner totals all incomes of one user. Zero rows sum to zero.
func (s *IncomeStore) SumByOwner(owner uint) (decimal.Decimal, error) {
	return sumAmounts(s.DB.Model(&models.Income{}).Where("user_id = ?", owner))
}

// SumByOwnerRange totals incomes dated within [from, to].
func (s *IncomeStore) SumByOwnerRange(owner uint, from, to time.Time) (decimal.Decimal, error) {
	return sumAmounts(s.DB.Model(&models.Income{}).
		Where("user_id = ? AND date >= ? AND date <= ?", owner, from, to))
}
