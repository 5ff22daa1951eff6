package plan

import (
	"math"

	"github.com/warp/installment-engine/calendar"
	"github.com/warp/installment-engine/money"
)

// =============================================================================
// PLAN CREATION
// =============================================================================

// CreatePlan generates the full installment schedule for the request.
//
// Amount validation runs first, via money.Distribute, so an invalid request
// fails before any date work. Due dates are then generated in two layers:
//
//  1. A nominal sequence driven purely by recurrence. Each nominal date is
//     derived from the previous NOMINAL date, never from its business-day
//     adjusted counterpart. A holiday shift on installment 3 therefore never
//     perturbs the spacing of installment 4. Chaining from the shifted date
//     is the easy mistake here; the nominal chain is the contract.
//  2. The visible due date for each line: the next business day on or after
//     its nominal date under the supplied holiday calendar.
//
// The returned line amounts sum to req.NetAmount exactly in minor units.
func CreatePlan(req PlanRequest, cal calendar.HolidayCalendar) ([]InstallmentLine, error) {
	step, err := req.recurrenceStep()
	if err != nil {
		return nil, err
	}

	amounts, err := money.Distribute(req.NetAmount.MinorUnits(), req.InstallmentCount)
	if err != nil {
		return nil, err
	}

	lines := make([]InstallmentLine, len(amounts))
	nominal := req.FirstDueDate
	for i, units := range amounts {
		due, err := calendar.NextBusinessDay(nominal, cal)
		if err != nil {
			return nil, err
		}
		lines[i] = InstallmentLine{
			SequenceNo: i + 1,
			Amount:     money.FromMinorUnits(units),
			DueDate:    due,
		}
		nominal = step(nominal)
	}
	return lines, nil
}

// recurrenceStep validates the recurrence configuration and returns the
// nominal-date advance function.
func (req PlanRequest) recurrenceStep() (func(calendar.Date) calendar.Date, error) {
	switch req.Cadence {
	case CadenceMonthly, "":
		months := req.RecurrenceMonths
		if months <= 0 {
			return nil, ErrInvalidRecurrence
		}
		return func(d calendar.Date) calendar.Date { return d.AddMonths(months) }, nil

	case CadenceSpread:
		if req.InstallmentCount <= 0 {
			// Let money.Distribute surface ErrInvalidCount for this one.
			return func(d calendar.Date) calendar.Date { return d }, nil
		}
		offset := int(math.Round(365 / float64(req.InstallmentCount)))
		if offset < 1 {
			// A zero offset would stack every installment on the same day.
			return nil, ErrInvalidRecurrence
		}
		return func(d calendar.Date) calendar.Date { return d.AddDays(offset) }, nil

	default:
		return nil, ErrInvalidRecurrence
	}
}
