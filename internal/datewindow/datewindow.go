// Package datewindow derives the calendar ranges the analytics reports are
// built over. All ranges are date-granular and inclusive of both endpoints.
package datewindow

import "time"

// Defaults applied when a caller passes a non-positive window size.
const (
	DefaultTrailingDays   = 30
	DefaultTrailingMonths = 6
)

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// Bounds returns the first and last day of the month, midnight UTC.
func (m Month) Bounds() (start, end time.Time) {
	return MonthBounds(m.Year, m.Month)
}

// DateOf truncates t to its calendar date, midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the first and last day of a calendar month, inclusive.
// Day arithmetic handles 28/29/30/31 day months and leap years.
func MonthBounds(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// day zero of the next month is the last day of this one
	end = time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return start, end
}

// TrailingDays returns the window of the given number of days ending at the
// reference date, inclusive. days <= 0 selects the 30-day default.
func TrailingDays(now time.Time, days int) (start, end time.Time) {
	if days <= 0 {
		days = DefaultTrailingDays
	}
	end = DateOf(now)
	start = end.AddDate(0, 0, -(days - 1))
	return start, end
}

// TrailingMonths returns the given number of calendar months ending at the
// reference date's month, oldest first. months <= 0 selects the 6-month default.
func TrailingMonths(now time.Time, months int) []Month {
	if months <= 0 {
		months = DefaultTrailingMonths
	}
	// integer month index avoids AddDate end-of-month normalization
	idx := now.Year()*12 + int(now.Month()) - 1
	out := make([]Month, 0, months)
	for i := months - 1; i >= 0; i-- {
		j := idx - i
		out = append(out, Month{Year: j / 12, Month: time.Month(j%12 + 1)})
	}
	return out
}

// YearMonths returns the 12 months of a year in calendar order.
// year <= 0 selects the reference date's year.
func YearMonths(now time.Time, year int) []Month {
	if year <= 0 {
		year = now.Year()
	}
	out := make([]Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, Month{Year: year, Month: m})
	}
	return out
}
