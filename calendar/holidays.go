package calendar

import "sort"

// =============================================================================
// HOLIDAY CALENDAR - Injected non-business-day configuration
// =============================================================================

// HolidayCalendar answers whether a date is a configured holiday. Holiday
// lists are year- and locale-specific and are supplied by the caller; the
// engine never hard-codes one.
type HolidayCalendar interface {
	IsHoliday(d Date) bool
}

// EmptyCalendar is a no-op calendar for plans with no configured holidays.
type EmptyCalendar struct{}

func (EmptyCalendar) IsHoliday(Date) bool { return false }

// HolidaySet is an immutable set of holiday dates.
type HolidaySet struct {
	days map[Date]struct{}
}

// NewHolidaySet builds a set from the given dates. The input slice is copied;
// the set never changes afterwards.
func NewHolidaySet(dates ...Date) *HolidaySet {
	days := make(map[Date]struct{}, len(dates))
	for _, d := range dates {
		days[d] = struct{}{}
	}
	return &HolidaySet{days: days}
}

func (s *HolidaySet) IsHoliday(d Date) bool {
	if s == nil {
		return false
	}
	_, ok := s.days[d]
	return ok
}

// Len returns the number of holidays in the set.
func (s *HolidaySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.days)
}

// Dates returns the holidays in ascending order.
func (s *HolidaySet) Dates() []Date {
	if s == nil {
		return nil
	}
	out := make([]Date, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Merge combines multiple calendars; a date is a holiday if any source says
// so. Nil sources are skipped. Useful for layering a tenant's JSON holiday
// bundle over the stored company calendar.
func Merge(calendars ...HolidayCalendar) HolidayCalendar {
	filtered := make([]HolidayCalendar, 0, len(calendars))
	for _, c := range calendars {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	return mergedCalendar(filtered)
}

type mergedCalendar []HolidayCalendar

func (m mergedCalendar) IsHoliday(d Date) bool {
	for _, c := range m {
		if c.IsHoliday(d) {
			return true
		}
	}
	return false
}
