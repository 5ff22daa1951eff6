package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/installment-engine/calendar"
)

func TestAddMonths_ClampsToEndOfShorterMonth(t *testing.T) {
	// GIVEN: 31 January
	// WHEN: Adding one month
	// THEN: 28 February (non-leap year), never an overflow into March

	jan31 := calendar.NewDate(2025, time.January, 31)
	assert.Equal(t, calendar.NewDate(2025, time.February, 28), jan31.AddMonths(1))

	// Leap year clamps to the 29th
	jan31leap := calendar.NewDate(2024, time.January, 31)
	assert.Equal(t, calendar.NewDate(2024, time.February, 29), jan31leap.AddMonths(1))
}

func TestAddMonths_ClampsTo30DayMonths(t *testing.T) {
	may31 := calendar.NewDate(2025, time.May, 31)
	assert.Equal(t, calendar.NewDate(2025, time.June, 30), may31.AddMonths(1))
}

func TestAddMonths_NoClampNeeded(t *testing.T) {
	jan15 := calendar.NewDate(2025, time.January, 15)
	assert.Equal(t, calendar.NewDate(2025, time.February, 15), jan15.AddMonths(1))
	assert.Equal(t, calendar.NewDate(2026, time.January, 15), jan15.AddMonths(12))
}

func TestAddMonths_CrossesYearBoundary(t *testing.T) {
	nov30 := calendar.NewDate(2025, time.November, 30)
	assert.Equal(t, calendar.NewDate(2026, time.February, 28), nov30.AddMonths(3))
}

func TestDate_WeekendDetection(t *testing.T) {
	sat := calendar.NewDate(2025, time.June, 7)
	sun := calendar.NewDate(2025, time.June, 8)
	mon := calendar.NewDate(2025, time.June, 9)

	assert.True(t, sat.IsWeekend())
	assert.True(t, sun.IsWeekend())
	assert.False(t, mon.IsWeekend())
}

func TestDate_Parse(t *testing.T) {
	d, err := calendar.Parse("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.March, 10), d)

	_, err = calendar.Parse("10/03/2025")
	assert.Error(t, err)
}

func TestDate_Comparisons(t *testing.T) {
	a := calendar.NewDate(2025, time.March, 10)
	b := calendar.NewDate(2025, time.March, 11)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.BeforeOrEqual(a))
	assert.True(t, a.AfterOrEqual(a))
	assert.False(t, a.Equal(b))
}

func TestFromTime_DropsTimeComponent(t *testing.T) {
	ts := time.Date(2025, time.March, 10, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, calendar.NewDate(2025, time.March, 10), calendar.FromTime(ts))
}
