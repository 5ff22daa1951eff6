/*
Package calendar provides day-granularity dates and business-day placement
for installment due dates.

PURPOSE:
  Due dates are pure calendar days: no time component, no timezone beyond a
  fixed UTC normalization. This package owns month arithmetic (with end-of-
  month clamping) and the weekend/holiday adjustment used when a nominal due
  date lands on a non-business day.

KEY CONCEPTS:
  - Date: a normalized year-month-day value, safe as a map key
  - HolidayCalendar: injected holiday lookup (holidays.go)
  - NextBusinessDay: forward scan to the first business day (business_day.go)

DESIGN PRINCIPLES:
  1. Injection: the holiday list is caller configuration, never a constant
  2. Clamping: adding months never overflows into the following month
  3. Purity: no I/O, no globals; every function is deterministic

SEE ALSO:
  - holidays.go: HolidayCalendar interface and set implementation
  - business_day.go: Weekend/holiday adjustment
*/
package calendar

import (
	"time"
)

// Date is a calendar day with no time component, normalized to UTC midnight.
// Dates compare with == and are usable as map keys.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a time.Time to its calendar day.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day. Kept out of the engine's pure
// paths; used only by the surrounding jobs and handlers.
func Today() Date {
	return FromTime(time.Now().UTC())
}

// Parse reads a "2006-01-02" formatted date.
func Parse(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return FromTime(t), nil
}

// Comparison
func (d Date) Before(o Date) bool        { return d.t.Before(o.t) }
func (d Date) After(o Date) bool         { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool         { return d.t.Equal(o.t) }
func (d Date) BeforeOrEqual(o Date) bool { return !d.After(o) }
func (d Date) AfterOrEqual(o Date) bool  { return !d.Before(o) }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

// IsWeekend reports whether the date falls on Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddDays advances the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.t.AddDate(0, 0, n))
}

// AddMonths advances the date by n months, clamping to the last valid day of
// the target month when the original day-of-month does not exist there:
// 31 Jan + 1 month is 28 (or 29) Feb, never an overflow into March.
// time.AddDate would normalize the overflow instead, which is wrong for
// due-date recurrence.
func (d Date) AddMonths(n int) Date {
	firstOfTarget := time.Date(d.Year(), d.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := d.Day()
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return NewDate(firstOfTarget.Year(), firstOfTarget.Month(), day)
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Time returns the underlying UTC midnight time, for persistence layers.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	return d.t.Format("2006-01-02")
}
