// Package analytics builds the derived financial reports: overall summary,
// category breakdown, monthly and yearly rollups, trailing-window summary and
// the multi-month trend series. It only reads from the ledger stores and does
// all arithmetic in decimal.
package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/datewindow"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/money"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/store"

	"github.com/shopspring/decimal"
)

// ErrUnavailable wraps any store failure encountered while building a report.
// Reports are never retried here; the HTTP layer decides what to do.
var ErrUnavailable = errors.New("analytics unavailable")

// IncomeSums is the slice of the income store the engine reads.
type IncomeSums interface {
	SumByOwner(owner uint) (decimal.Decimal, error)
	SumByOwnerRange(owner uint, from, to time.Time) (decimal.Decimal, error)
}

// ExpenseSums is the slice of the expense store the engine reads.
type ExpenseSums interface {
	SumByOwner(owner uint) (decimal.Decimal, error)
	SumByOwnerRange(owner uint, from, to time.Time) (decimal.Decimal, error)
	ByCategory(owner uint) ([]store.CategoryTotal, error)
}

// Service is the analytics engine. now is injectable so trailing windows are
// testable; it defaults to time.Now.
type Service struct {
	incomes  IncomeSums
	expenses ExpenseSums
	now      func() time.Time
}

func NewService(incomes IncomeSums, expenses ExpenseSums) *Service {
	return &Service{incomes: incomes, expenses: expenses, now: time.Now}
}

// WithClock overrides the reference clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// Summary is the income/expense/balance/savings-rate quadruple used by the
// overall and recent reports.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"currentBalance"`
	SavingsRate   decimal.Decimal `json:"savingsRate"`
}

// OverallSummary reports all-time totals for one owner.
func (s *Service) OverallSummary(owner uint) (*Summary, error) {
	income, err := s.incomes.SumByOwner(owner)
	if err != nil {
		return nil, unavailable(err)
	}
	expenses, err := s.expenses.SumByOwner(owner)
	if err != nil {
		return nil, unavailable(err)
	}
	return &Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       money.Balance(income, expenses),
		SavingsRate:   money.SavingsRate(income, expenses),
	}, nil
}

// CategoryShare is one slice of the category breakdown.
type CategoryShare struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int64           `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CategoryBreakdown lists every expense category of the owner with its share
// of the all-time expense total, largest first.
func (s *Service) CategoryBreakdown(owner uint) ([]CategoryShare, decimal.Decimal, error) {
	totals, err := s.expenses.ByCategory(owner)
	if err != nil {
		return nil, decimal.Zero, unavailable(err)
	}
	total, err := s.expenses.SumByOwner(owner)
	if err != nil {
		return nil, decimal.Zero, unavailable(err)
	}

	shares := make([]CategoryShare, 0, len(totals))
	for _, ct := range totals {
		shares = append(shares, CategoryShare{
			Category:   ct.Category,
			Amount:     ct.Total,
			Count:      ct.Count,
			Percentage: money.CategoryPercentage(ct.Total, total),
		})
	}
	return shares, total, nil
}

// MonthSummary is one month of the yearly rollup.
type MonthSummary struct {
	Month       int             `json:"month"`
	MonthName   string          `json:"monthName"`
	Year        int             `json:"year"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Balance     decimal.Decimal `json:"balance"`
	SavingsRate decimal.Decimal `json:"savingsRate"`
}

// YearTotals aggregates the whole year. The savings rate here is computed
// from the year totals, not averaged over per-month rates.
type YearTotals struct {
	Year          int             `json:"year"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
	SavingsRate   decimal.Decimal `json:"averageMonthlySavingsRate"`
}

// MonthlyReport is the full 12-month rollup of one year.
type MonthlyReport struct {
	Months []MonthSummary `json:"monthlyData"`
	Totals YearTotals     `json:"yearlyTotals"`
}

// MonthlySummary builds the per-month rollup for the target year; year <= 0
// means the current year.
func (s *Service) MonthlySummary(owner uint, year int) (*MonthlyReport, error) {
	months := datewindow.YearMonths(s.now(), year)

	report := &MonthlyReport{Months: make([]MonthSummary, 0, len(months))}
	yearIncome, yearExpenses := decimal.Zero, decimal.Zero

	for _, m := range months {
		from, to := m.Bounds()
		income, err := s.incomes.SumByOwnerRange(owner, from, to)
		if err != nil {
			return nil, unavailable(err)
		}
		expenses, err := s.expenses.SumByOwnerRange(owner, from, to)
		if err != nil {
			return nil, unavailable(err)
		}

		report.Months = append(report.Months, MonthSummary{
			Month:       int(m.Month),
			MonthName:   m.Month.String(),
			Year:        m.Year,
			Income:      income,
			Expenses:    expenses,
			Balance:     money.Balance(income, expenses),
			SavingsRate: money.SavingsRate(income, expenses),
		})
		yearIncome = yearIncome.Add(income)
		yearExpenses = yearExpenses.Add(expenses)
	}

	report.Totals = YearTotals{
		Year:          months[0].Year,
		TotalIncome:   yearIncome,
		TotalExpenses: yearExpenses,
		TotalBalance:  money.Balance(yearIncome, yearExpenses),
		SavingsRate:   money.SavingsRate(yearIncome, yearExpenses),
	}
	return report, nil
}

// RecentSummary is the trailing-days report.
type RecentSummary struct {
	PeriodDays  int             `json:"periodDays"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Balance     decimal.Decimal `json:"balance"`
	SavingsRate decimal.Decimal `json:"savingsRate"`
}

// Recent reports the trailing window ending today; days <= 0 means 30.
func (s *Service) Recent(owner uint, days int) (*RecentSummary, error) {
	if days <= 0 {
		days = datewindow.DefaultTrailingDays
	}
	from, to := datewindow.TrailingDays(s.now(), days)

	income, err := s.incomes.SumByOwnerRange(owner, from, to)
	if err != nil {
		return nil, unavailable(err)
	}
	expenses, err := s.expenses.SumByOwnerRange(owner, from, to)
	if err != nil {
		return nil, unavailable(err)
	}
	return &RecentSummary{
		PeriodDays:  days,
		StartDate:   from,
		EndDate:     to,
		Income:      income,
		Expenses:    expenses,
		Balance:     money.Balance(income, expenses),
		SavingsRate: money.SavingsRate(income, expenses),
	}, nil
}

// TrendPoint is one month of the income-vs-expenses series.
type TrendPoint struct {
	Month      string          `json:"month"`
	Year       int             `json:"year"`
	Income     decimal.Decimal `json:"income"`
	Expenses   decimal.Decimal `json:"expenses"`
	Difference decimal.Decimal `json:"difference"`
}

// Trend returns per-month income/expense/difference over the trailing months,
// oldest first, ending at the current month; months <= 0 means 6.
func (s *Service) Trend(owner uint, months int) ([]TrendPoint, error) {
	window := datewindow.TrailingMonths(s.now(), months)

	points := make([]TrendPoint, 0, len(window))
	for _, m := range window {
		from, to := m.Bounds()
		income, err := s.incomes.SumByOwnerRange(owner, from, to)
		if err != nil {
			return nil, unavailable(err)
		}
		expenses, err := s.expenses.SumByOwnerRange(owner, from, to)
		if err != nil {
			return nil, unavailable(err)
		}
		points = append(points, TrendPoint{
			Month:      m.Month.String(),
			Year:       m.Year,
			Income:     income,
			Expenses:   expenses,
			Difference: money.Balance(income, expenses),
		})
	}
	return points, nil
}

// Dashboard is the composite payload of the four standing reports.
type Dashboard struct {
	Overall    *Summary        `json:"overallSummary"`
	Categories []CategoryShare `json:"categoryBreakdown"`
	Recent     *RecentSummary  `json:"recentSummary"`
	Trend      []TrendPoint    `json:"trendData"`
}

// BuildDashboard composes the four report builders. Any sub-call failing
// fails the whole dashboard; there is no partial payload.
func (s *Service) BuildDashboard(owner uint) (*Dashboard, error) {
	overall, err := s.OverallSummary(owner)
	if err != nil {
		return nil, err
	}
	categories, _, err := s.CategoryBreakdown(owner)
	if err != nil {
		return nil, err
	}
	recent, err := s.Recent(owner, datewindow.DefaultTrailingDays)
	if err != nil {
		return nil, err
	}
	trend, err := s.Trend(owner, datewindow.DefaultTrailingMonths)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Overall:    overall,
		Categories: categories,
		Recent:     recent,
		Trend:      trend,
	}, nil
}
