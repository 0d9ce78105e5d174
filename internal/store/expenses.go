package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryTotal is one row of the per-category expense aggregation.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int64
}

// ExpenseStore persists expense records, always scoped to their owner.
type ExpenseStore struct {
	DB *gorm.DB
}

func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{DB: db}
}

func (s *ExpenseStore) Create(expense *models.Expense) error {
	if err := s.DB.Create(expense).Error; err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// ListByOwner returns all expenses of one user, newest first.
func (s *ExpenseStore) ListByOwner(owner uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.DB.Where("user_id = ?", owner).
		Order("date DESC, created_at DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// ListByOwnerCategory filters by category label.
func (s *ExpenseStore) ListByOwnerCategory(owner uint, category string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.DB.Where("user_id = ? AND category = ?", owner, category).
		Order("date DESC, created_at DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("list expenses by category: %w", err)
	}
	return expenses, nil
}

// ListByOwnerRange returns expenses dated within [from, to].
func (s *ExpenseStore) ListByOwnerRange(owner uint, from, to time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.DB.Where("user_id = ? AND date >= ? AND date <= ?", owner, from, to).
		Order("date DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("list expenses by range: %w", err)
	}
	return expenses, nil
}

// FindByIDOwned fetches one expense by (id, owner).
func (s *ExpenseStore) FindByIDOwned(id, owner uint) (*models.Expense, error) {
	var expense models.Expense
	err := s.DB.Where("id = ? AND user_id = ?", id, owner).First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return &expense, nil
}

// Update rewrites the mutable fields of an expense. Matching zero rows is a
// failure, not a no-op.
func (s *ExpenseStore) Update(expense *models.Expense) error {
	res := s.DB.Model(&models.Expense{}).
		Where("id = ? AND user_id = ?", expense.ID, expense.UserID).
		Updates(map[string]interface{}{
			"amount":      expense.Amount.Round(2),
			"category":    expense.Category,
			"description": expense.Description,
			"date":        expense.Date,
		})
	if res.Error != nil {
		return fmt.Errorf("update expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one expense by (id, owner). Matching zero rows is a failure.
func (s *ExpenseStore) Delete(id, owner uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", id, owner).Delete(&models.Expense{})
	if res.Error != nil {
		return fmt.Errorf("delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SumByOwner totals all expenses of one user. Zero rows sum to zero.
func (s *ExpenseStore) SumByOwner(owner uint) (decimal.Decimal, error) {
	return sumAmounts(s.DB.Model(&models.Expense{}).Where("user_id = ?", owner))
}

// SumByOwnerRange totals expenses dated within [from, to].
func (s *ExpenseStore) SumByOwnerRange(owner uint, from, to time.Time) (decimal.Decimal, error) {
	return sumAmounts(s.DB.Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date <= ?", owner, from, to))
}

// ByCategory aggregates one user's expenses per category, largest total
// first, ties broken by category label so the order is deterministic.
func (s *ExpenseStore) ByCategory(owner uint) ([]CategoryTotal, error) {
	var rows []struct {
		Category string
		Amount   decimal.Decimal
	}
	err := s.DB.Model(&models.Expense{}).
		Select("category, amount").
		Where("user_id = ?", owner).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}

	byName := make(map[string]*CategoryTotal)
	for _, r := range rows {
		ct, ok := byName[r.Category]
		if !ok {
			ct = &CategoryTotal{Category: r.Category, Total: decimal.Zero}
			byName[r.Category] = ct
		}
		ct.Total = ct.Total.Add(r.Amount)
		ct.Count++
	}

	out := make([]CategoryTotal, 0, len(byName))
	for _, ct := range byName {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

// DistinctCategories returns the category labels one user has spent in,
// alphabetically.
func (s *ExpenseStore) DistinctCategories(owner uint) ([]string, error) {
	var categories []string
	err := s.DB.Model(&models.Expense{}).
		Distinct("category").
		Where("user_id = ?", owner).
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	return categories, nil
}
