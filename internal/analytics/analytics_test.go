package analytics

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type rec struct {
	owner    uint
	amount   decimal.Decimal
	category string
	date     time.Time
}

// fakeLedger implements IncomeSums and ExpenseSums over an in-memory slice.
type fakeLedger struct {
	recs []rec
	err  error
}

func (f *fakeLedger) SumByOwner(owner uint) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	total := decimal.Zero
	for _, r := range f.recs {
		if r.owner == owner {
			total = total.Add(r.amount)
		}
	}
	return total, nil
}

func (f *fakeLedger) SumByOwnerRange(owner uint, from, to time.Time) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	total := decimal.Zero
	for _, r := range f.recs {
		if r.owner == owner && !r.date.Before(from) && !r.date.After(to) {
			total = total.Add(r.amount)
		}
	}
	return total, nil
}

func (f *fakeLedger) ByCategory(owner uint) ([]store.CategoryTotal, error) {
	if f.err != nil {
		return nil, f.err
	}
	byName := map[string]*store.CategoryTotal{}
	for _, r := range f.recs {
		if r.owner != owner {
			continue
		}
		ct, ok := byName[r.category]
		if !ok {
			ct = &store.CategoryTotal{Category: r.category, Total: decimal.Zero}
			byName[r.category] = ct
		}
		ct.Total = ct.Total.Add(r.amount)
		ct.Count++
	}
	out := make([]store.CategoryTotal, 0, len(byName))
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

// testNow is the fixed reference date of every test below.
var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestService(incomes, expenses *fakeLedger) *Service {
	return NewService(incomes, expenses).WithClock(func() time.Time { return testNow })
}

const owner uint = 1

func TestOverallSummary(t *testing.T) {
	incomes := &fakeLedger{recs: []rec{
		{owner, dec("1000.00"), "Salary", day(2025, time.January, 5)},
	}}
	expenses := &fakeLedger{recs: []rec{
		{owner, dec("875.55"), "Housing", day(2025, time.January, 10)},
	}}
	svc := newTestService(incomes, expenses)

	sum, err := svc.OverallSummary(owner)
	require.NoError(t, err)
	assert.True(t, sum.TotalIncome.Equal(dec("1000.00")))
	assert.True(t, sum.TotalExpenses.Equal(dec("875.55")))
	assert.True(t, sum.Balance.Equal(dec("124.45")))
	assert.True(t, sum.SavingsRate.Equal(dec("12.45")), "got %s", sum.SavingsRate)
}

func TestOverallSummary_NoData(t *testing.T) {
	svc := newTestService(&fakeLedger{}, &fakeLedger{})
	sum, err := svc.OverallSummary(owner)
	require.NoError(t, err)
	assert.True(t, sum.TotalIncome.IsZero())
	assert.True(t, sum.SavingsRate.IsZero(), "zero income must yield zero rate")
}

func TestCategoryBreakdown_Scenario(t *testing.T) {
	expenses := &fakeLedger{recs: []rec{
		{owner, dec("1200.00"), "Housing", day(2025, time.January, 1)},
		{owner, dec("1200.00"), "Housing", day(2025, time.February, 1)},
		{owner, dec("400.00"), "Food", day(2025, time.February, 15)},
	}}
	svc := newTestService(&fakeLedger{}, expenses)

	shares, total, err := svc.CategoryBreakdown(owner)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("2800.00")))
	require.Len(t, shares, 2)

	assert.Equal(t, "Housing", shares[0].Category)
	assert.True(t, shares[0].Amount.Equal(dec("2400.00")))
	assert.EqualValues(t, 2, shares[0].Count)
	assert.True(t, shares[0].Percentage.Equal(dec("85.71")), "got %s", shares[0].Percentage)

	assert.Equal(t, "Food", shares[1].Category)
	assert.True(t, shares[1].Amount.Equal(dec("400.00")))
	assert.EqualValues(t, 1, shares[1].Count)
	assert.True(t, shares[1].Percentage.Equal(dec("14.29")), "got %s", shares[1].Percentage)

	// percentages sum to 100 within the rounding epsilon per category
	sum := decimal.Zero
	for _, sh := range shares {
		sum = sum.Add(sh.Percentage)
	}
	epsilon := dec("0.01").Mul(decimal.NewFromInt(int64(len(shares))))
	assert.True(t, sum.Sub(dec("100")).Abs().LessThanOrEqual(epsilon), "sum = %s", sum)
}

func TestMonthlySummary(t *testing.T) {
	incomes := &fakeLedger{recs: []rec{
		{owner, dec("1000.00"), "Salary", day(2024, time.January, 15)},
		{owner, dec("1000.00"), "Salary", day(2024, time.February, 15)},
		{owner, dec("500.00"), "Bonus", day(2024, time.December, 31)},
	}}
	expenses := &fakeLedger{recs: []rec{
		{owner, dec("300.00"), "Food", day(2024, time.January, 20)},
		{owner, dec("999.99"), "Travel", day(2024, time.July, 4)},
	}}
	svc := newTestService(incomes, expenses)

	report, err := svc.MonthlySummary(owner, 2024)
	require.NoError(t, err)
	require.Len(t, report.Months, 12)

	assert.Equal(t, 1, report.Months[0].Month)
	assert.Equal(t, "January", report.Months[0].MonthName)
	assert.True(t, report.Months[0].Income.Equal(dec("1000.00")))
	assert.True(t, report.Months[0].Expenses.Equal(dec("300.00")))
	assert.True(t, report.Months[0].Balance.Equal(dec("700.00")))

	// December 31 lands in December, not outside the year
	assert.True(t, report.Months[11].Income.Equal(dec("500.00")))

	// year totals equal the sum of the twelve months exactly
	sumIncome, sumExpenses := decimal.Zero, decimal.Zero
	for _, m := range report.Months {
		sumIncome = sumIncome.Add(m.Income)
		sumExpenses = sumExpenses.Add(m.Expenses)
	}
	assert.True(t, report.Totals.TotalIncome.Equal(sumIncome))
	assert.True(t, report.Totals.TotalExpenses.Equal(sumExpenses))
	assert.Equal(t, 2024, report.Totals.Year)

	// the yearly rate comes from year totals, not averaged monthly rates
	wantRate := dec("2500").Sub(dec("1299.99")).DivRound(dec("2500"), 4).Mul(decimal.NewFromInt(100))
	assert.True(t, report.Totals.SavingsRate.Equal(wantRate), "got %s", report.Totals.SavingsRate)
}

func TestMonthlySummary_DefaultYear(t *testing.T) {
	svc := newTestService(&fakeLedger{}, &fakeLedger{})
	report, err := svc.MonthlySummary(owner, 0)
	require.NoError(t, err)
	assert.Equal(t, testNow.Year(), report.Totals.Year)
}

func TestRecent(t *testing.T) {
	incomes := &fakeLedger{recs: []rec{
		{owner, dec("100.00"), "Salary", day(2025, time.March, 1)},   // inside the window
		{owner, dec("999.00"), "Salary", day(2025, time.January, 1)}, // outside
	}}
	expenses := &fakeLedger{recs: []rec{
		{owner, dec("40.00"), "Food", day(2025, time.February, 20)},
	}}
	svc := newTestService(incomes, expenses)

	sum, err := svc.Recent(owner, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, sum.PeriodDays)
	assert.True(t, sum.Income.Equal(dec("100.00")), "got %s", sum.Income)
	assert.True(t, sum.Expenses.Equal(dec("40.00")))
	assert.True(t, sum.Balance.Equal(dec("60.00")))
	assert.Equal(t, day(2025, time.March, 15), sum.EndDate)
}

func TestTrend(t *testing.T) {
	incomes := &fakeLedger{recs: []rec{
		{owner, dec("1000.00"), "Salary", day(2025, time.January, 15)},
	}}
	expenses := &fakeLedger{recs: []rec{
		{owner, dec("250.00"), "Food", day(2025, time.January, 20)},
	}}
	svc := newTestService(incomes, expenses)

	points, err := svc.Trend(owner, 0)
	require.NoError(t, err)
	require.Len(t, points, 6, "trend always has exactly the requested months")

	// oldest first, ending at the current month
	assert.Equal(t, "October", points[0].Month)
	assert.Equal(t, 2024, points[0].Year)
	assert.Equal(t, "March", points[5].Month)
	assert.Equal(t, 2025, points[5].Year)

	// January carries the data, with difference = income - expenses
	jan := points[3]
	require.Equal(t, "January", jan.Month)
	assert.True(t, jan.Income.Equal(dec("1000.00")))
	assert.True(t, jan.Expenses.Equal(dec("250.00")))
	assert.True(t, jan.Difference.Equal(dec("750.00")))
}

func TestReadsAreIdempotent(t *testing.T) {
	incomes := &fakeLedger{recs: []rec{
		{owner, dec("1000.00"), "Salary", day(2025, time.February, 1)},
	}}
	expenses := &fakeLedger{recs: []rec{
		{owner, dec("300.00"), "Food", day(2025, time.February, 2)},
	}}
	svc := newTestService(incomes, expenses)

	first, err := svc.BuildDashboard(owner)
	require.NoError(t, err)
	second, err := svc.BuildDashboard(owner)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOwnershipIsolation(t *testing.T) {
	expenses := &fakeLedger{recs: []rec{
		{1, dec("1200.00"), "Housing", day(2025, time.February, 1)},
		{2, dec("7777.00"), "Housing", day(2025, time.February, 1)},
	}}
	svc := newTestService(&fakeLedger{}, expenses)

	shares, total, err := svc.CategoryBreakdown(1)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.True(t, total.Equal(dec("1200.00")))
	assert.True(t, shares[0].Amount.Equal(dec("1200.00")))
}

func TestStoreFailureWrapsUnavailable(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newTestService(&fakeLedger{err: boom}, &fakeLedger{})

	_, err := svc.OverallSummary(owner)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, boom, "the proximate cause must stay attached")
}

func TestDashboardFailsWhole(t *testing.T) {
	boom := errors.New("disk gone")
	svc := newTestService(&fakeLedger{}, &fakeLedger{err: boom})

	dashboard, err := svc.BuildDashboard(owner)
	assert.Nil(t, dashboard, "no partial dashboard")
	assert.ErrorIs(t, err, ErrUnavailable)
}
