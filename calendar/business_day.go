package calendar

import (
	"errors"
	"fmt"
)

// =============================================================================
// BUSINESS DAY ADJUSTMENT
// =============================================================================

// maxBusinessDayScan bounds the forward search. Real holiday runs are a few
// days long; hitting the cap means the calendar is malformed (for example,
// every day of a month marked as a holiday).
const maxBusinessDayScan = 30

// ErrCalendarExhausted is returned when no business day exists within the
// scan bound. Use with errors.Is().
var ErrCalendarExhausted = errors.New("no business day found within scan bound")

// CalendarExhaustedError reports where the failed scan started.
type CalendarExhaustedError struct {
	Start   Date
	Scanned int
}

func (e *CalendarExhaustedError) Error() string {
	return fmt.Sprintf("no business day within %d days of %s", e.Scanned, e.Start)
}

func (e *CalendarExhaustedError) Unwrap() error {
	return ErrCalendarExhausted
}

// NextBusinessDay returns the first date on or after d that is neither a
// weekend day nor a holiday in cal. A date that already qualifies is
// returned unchanged, so the function is idempotent. A nil calendar means
// weekends only.
func NextBusinessDay(d Date, cal HolidayCalendar) (Date, error) {
	if cal == nil {
		cal = EmptyCalendar{}
	}
	current := d
	for i := 0; i <= maxBusinessDayScan; i++ {
		if !current.IsWeekend() && !cal.IsHoliday(current) {
			return current, nil
		}
		current = current.AddDays(1)
	}
	return Date{}, &CalendarExhaustedError{Start: d, Scanned: maxBusinessDayScan}
}

// IsBusinessDay reports whether d is neither a weekend day nor a holiday.
func IsBusinessDay(d Date, cal HolidayCalendar) bool {
	if d.IsWeekend() {
		return false
	}
	return cal == nil || !cal.IsHoliday(d)
}
