package plan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/installment-engine/calendar"
	"github.com/warp/installment-engine/money"
	"github.com/warp/installment-engine/plan"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func monthlyRequest(amount string, count int, firstDue calendar.Date) plan.PlanRequest {
	return plan.PlanRequest{
		NetAmount:        money.MustParse(amount),
		InstallmentCount: count,
		FirstDueDate:     firstDue,
		Cadence:          plan.CadenceMonthly,
		RecurrenceMonths: 1,
	}
}

// Monday June 2 2025; the surrounding week has no weekend surprises.
func monday() calendar.Date { return calendar.NewDate(2025, time.June, 2) }

// =============================================================================
// SUM INVARIANT
// =============================================================================

func TestCreatePlan_SumInvariant(t *testing.T) {
	// GIVEN: Amounts that do not divide evenly
	// THEN: The line amounts always sum back to the net amount exactly

	cases := []struct {
		amount string
		count  int
	}{
		{"1000.07", 10},
		{"9999.99", 13},
		{"50.00", 3},
		{"0.05", 5},
		{"12345.67", 24},
	}

	for _, tc := range cases {
		lines, err := plan.CreatePlan(monthlyRequest(tc.amount, tc.count, monday()), calendar.EmptyCalendar{})
		require.NoError(t, err, "amount=%s count=%d", tc.amount, tc.count)
		require.Len(t, lines, tc.count)

		assert.True(t, plan.Total(lines).Equal(money.MustParse(tc.amount)),
			"amount=%s count=%d got total %s", tc.amount, tc.count, plan.Total(lines))

		for i, l := range lines {
			assert.Equal(t, i+1, l.SequenceNo)
			assert.True(t, l.Amount.IsPositive(), "line %d must be positive", i+1)
		}
	}
}

func TestCreatePlan_SingleInstallment_FullAmount(t *testing.T) {
	lines, err := plan.CreatePlan(monthlyRequest("5000.00", 1, monday()), calendar.EmptyCalendar{})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, 1, lines[0].SequenceNo)
	assert.True(t, lines[0].Amount.Equal(money.MustParse("5000.00")))
	assert.Equal(t, monday(), lines[0].DueDate)
}

func TestCreatePlan_RemainderFrontLoaded(t *testing.T) {
	lines, err := plan.CreatePlan(monthlyRequest("1000.07", 10, monday()), calendar.EmptyCalendar{})
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		assert.Equal(t, int64(10001), lines[i].Amount.MinorUnits(), "line %d", i+1)
	}
	for i := 7; i < 10; i++ {
		assert.Equal(t, int64(10000), lines[i].Amount.MinorUnits(), "line %d", i+1)
	}
}

// =============================================================================
// DUE DATE PLACEMENT
// =============================================================================

func TestCreatePlan_WeekendDueDateShiftsToMonday(t *testing.T) {
	// GIVEN: First due date on Saturday June 7 2025
	// THEN: The visible due date is Monday June 9

	sat := calendar.NewDate(2025, time.June, 7)
	lines, err := plan.CreatePlan(monthlyRequest("300.00", 1, sat), calendar.EmptyCalendar{})
	require.NoError(t, err)

	assert.Equal(t, calendar.NewDate(2025, time.June, 9), lines[0].DueDate)
}

func TestCreatePlan_HolidayDueDateShiftsPastHolidayRun(t *testing.T) {
	// Monday and Tuesday are holidays; the due date lands on Wednesday.
	holidays := calendar.NewHolidaySet(
		calendar.NewDate(2025, time.June, 2),
		calendar.NewDate(2025, time.June, 3),
	)

	lines, err := plan.CreatePlan(monthlyRequest("300.00", 1, monday()), holidays)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.June, 4), lines[0].DueDate)
}

func TestCreatePlan_NominalChainIgnoresShiftedDates(t *testing.T) {
	// GIVEN: The first due date is shifted three days forward by holidays
	// WHEN: Generating the second installment
	// THEN: Its nominal date is first-nominal + 1 month, NOT shifted-date + 1 month

	holidays := calendar.NewHolidaySet(
		calendar.NewDate(2025, time.June, 2),
		calendar.NewDate(2025, time.June, 3),
		calendar.NewDate(2025, time.June, 4),
	)

	lines, err := plan.CreatePlan(monthlyRequest("200.00", 2, monday()), holidays)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// Line 1 shifted from June 2 to June 5.
	assert.Equal(t, calendar.NewDate(2025, time.June, 5), lines[0].DueDate)
	// Line 2 nominal is July 2 (from the unshifted June 2), a Wednesday.
	assert.Equal(t, calendar.NewDate(2025, time.July, 2), lines[1].DueDate)
}

func TestCreatePlan_MonthEndClampingAcrossSequence(t *testing.T) {
	// GIVEN: Monthly recurrence starting 31 January 2025
	// THEN: The nominal chain clamps at February and stays clamped

	jan31 := calendar.NewDate(2025, time.January, 31)
	lines, err := plan.CreatePlan(monthlyRequest("400.00", 3, jan31), calendar.EmptyCalendar{})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	// Jan 31 2025 is a Friday, due as-is.
	assert.Equal(t, jan31, lines[0].DueDate)
	// Feb 28 2025 is a Friday.
	assert.Equal(t, calendar.NewDate(2025, time.February, 28), lines[1].DueDate)
	// Chained clamping: the March nominal derives from Feb 28, a Friday.
	assert.Equal(t, calendar.NewDate(2025, time.March, 28), lines[2].DueDate)
}

func TestCreatePlan_DueDatesNonDecreasing(t *testing.T) {
	holidays := calendar.NewHolidaySet(
		calendar.NewDate(2025, time.July, 2),
		calendar.NewDate(2025, time.September, 2),
	)

	lines, err := plan.CreatePlan(monthlyRequest("1200.00", 12, monday()), holidays)
	require.NoError(t, err)

	for i := 1; i < len(lines); i++ {
		assert.True(t, lines[i-1].DueDate.BeforeOrEqual(lines[i].DueDate),
			"line %d due %s after line %d due %s", i, lines[i-1].DueDate, i+1, lines[i].DueDate)
	}
}

func TestCreatePlan_SpreadCadence_UsesDayOffset(t *testing.T) {
	// GIVEN: 4 installments spread over a year
	// THEN: Nominal dates advance by round(365/4) = 91 days

	req := plan.PlanRequest{
		NetAmount:        money.MustParse("400.00"),
		InstallmentCount: 4,
		FirstDueDate:     monday(),
		Cadence:          plan.CadenceSpread,
	}

	lines, err := plan.CreatePlan(req, calendar.EmptyCalendar{})
	require.NoError(t, err)
	require.Len(t, lines, 4)

	// June 2 + 91 days = September 1 2025, a Monday.
	assert.Equal(t, calendar.NewDate(2025, time.September, 1), lines[1].DueDate)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestCreatePlan_InvalidAmount_FailsBeforeDateWork(t *testing.T) {
	req := monthlyRequest("0.00", 5, monday())
	_, err := plan.CreatePlan(req, calendar.EmptyCalendar{})
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestCreatePlan_InsufficientAmount_Rejected(t *testing.T) {
	// 4 cents cannot be split into 10 positive lines.
	req := monthlyRequest("0.04", 10, monday())
	_, err := plan.CreatePlan(req, calendar.EmptyCalendar{})
	assert.ErrorIs(t, err, money.ErrInsufficientAmount)
}

func TestCreatePlan_InvalidCount_Rejected(t *testing.T) {
	req := monthlyRequest("100.00", 0, monday())
	_, err := plan.CreatePlan(req, calendar.EmptyCalendar{})
	assert.ErrorIs(t, err, money.ErrInvalidCount)
}

func TestCreatePlan_NonPositiveRecurrence_Rejected(t *testing.T) {
	req := monthlyRequest("100.00", 2, monday())
	req.RecurrenceMonths = 0
	_, err := plan.CreatePlan(req, calendar.EmptyCalendar{})
	assert.ErrorIs(t, err, plan.ErrInvalidRecurrence)
}

func TestCreatePlan_UnknownCadence_Rejected(t *testing.T) {
	req := monthlyRequest("100.00", 2, monday())
	req.Cadence = "fortnightly"
	_, err := plan.CreatePlan(req, calendar.EmptyCalendar{})
	assert.ErrorIs(t, err, plan.ErrInvalidRecurrence)
}

func TestCreatePlan_DefaultCadenceIsMonthly(t *testing.T) {
	req := monthlyRequest("200.00", 2, monday())
	req.Cadence = ""

	lines, err := plan.CreatePlan(req, calendar.EmptyCalendar{})
	require.NoError(t, err)
	// July 2 2025 is a Wednesday.
	assert.Equal(t, calendar.NewDate(2025, time.July, 2), lines[1].DueDate)
}

func TestCreatePlan_CalendarExhausted_Propagates(t *testing.T) {
	var dates []calendar.Date
	d := calendar.NewDate(2025, time.June, 1)
	for i := 0; i < 60; i++ {
		dates = append(dates, d)
		d = d.AddDays(1)
	}

	_, err := plan.CreatePlan(monthlyRequest("100.00", 1, monday()), calendar.NewHolidaySet(dates...))
	assert.ErrorIs(t, err, calendar.ErrCalendarExhausted)
}
