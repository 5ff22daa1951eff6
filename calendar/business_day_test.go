package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/installment-engine/calendar"
)

func TestNextBusinessDay_QualifyingDateUnchanged(t *testing.T) {
	// Idempotence: a weekday with no holiday maps to itself.
	wed := calendar.NewDate(2025, time.June, 11)

	got, err := calendar.NextBusinessDay(wed, calendar.EmptyCalendar{})
	require.NoError(t, err)
	assert.Equal(t, wed, got)

	again, err := calendar.NextBusinessDay(got, calendar.EmptyCalendar{})
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestNextBusinessDay_SaturdayShiftsToMonday(t *testing.T) {
	sat := calendar.NewDate(2025, time.June, 7)

	got, err := calendar.NextBusinessDay(sat, calendar.EmptyCalendar{})
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.June, 9), got)
}

func TestNextBusinessDay_SkipsHolidayThenWeekend(t *testing.T) {
	// GIVEN: Friday June 6 is a holiday
	// WHEN: Adjusting Friday
	// THEN: The result skips the weekend too and lands on Monday

	holidays := calendar.NewHolidaySet(calendar.NewDate(2025, time.June, 6))

	got, err := calendar.NextBusinessDay(calendar.NewDate(2025, time.June, 6), holidays)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.June, 9), got)
}

func TestNextBusinessDay_SkipsConsecutiveHolidays(t *testing.T) {
	// Monday through Wednesday are holidays; Thursday is the first business day.
	holidays := calendar.NewHolidaySet(
		calendar.NewDate(2025, time.June, 9),
		calendar.NewDate(2025, time.June, 10),
		calendar.NewDate(2025, time.June, 11),
	)

	got, err := calendar.NextBusinessDay(calendar.NewDate(2025, time.June, 7), holidays)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.June, 12), got)
}

func TestNextBusinessDay_NilCalendarMeansWeekendsOnly(t *testing.T) {
	sun := calendar.NewDate(2025, time.June, 8)

	got, err := calendar.NextBusinessDay(sun, nil)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.June, 9), got)
}

func TestNextBusinessDay_MalformedCalendar_Exhausted(t *testing.T) {
	// GIVEN: Every day for two months marked as a holiday
	// THEN: The scan gives up instead of looping forever

	var dates []calendar.Date
	d := calendar.NewDate(2025, time.June, 1)
	for i := 0; i < 60; i++ {
		dates = append(dates, d)
		d = d.AddDays(1)
	}
	holidays := calendar.NewHolidaySet(dates...)

	_, err := calendar.NextBusinessDay(calendar.NewDate(2025, time.June, 2), holidays)
	assert.ErrorIs(t, err, calendar.ErrCalendarExhausted)

	var exhausted *calendar.CalendarExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, calendar.NewDate(2025, time.June, 2), exhausted.Start)
}

func TestHolidaySet_Dates_Sorted(t *testing.T) {
	set := calendar.NewHolidaySet(
		calendar.NewDate(2025, time.December, 25),
		calendar.NewDate(2025, time.January, 1),
		calendar.NewDate(2025, time.July, 4),
	)

	dates := set.Dates()
	require.Len(t, dates, 3)
	assert.Equal(t, calendar.NewDate(2025, time.January, 1), dates[0])
	assert.Equal(t, calendar.NewDate(2025, time.July, 4), dates[1])
	assert.Equal(t, calendar.NewDate(2025, time.December, 25), dates[2])
}

func TestMerge_AnySourceMakesHoliday(t *testing.T) {
	company := calendar.NewHolidaySet(calendar.NewDate(2025, time.June, 10))
	national := calendar.NewHolidaySet(calendar.NewDate(2025, time.June, 11))

	merged := calendar.Merge(company, nil, national)
	assert.True(t, merged.IsHoliday(calendar.NewDate(2025, time.June, 10)))
	assert.True(t, merged.IsHoliday(calendar.NewDate(2025, time.June, 11)))
	assert.False(t, merged.IsHoliday(calendar.NewDate(2025, time.June, 12)))
}
