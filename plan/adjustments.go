package plan

import (
	"github.com/shopspring/decimal"

	"github.com/warp/installment-engine/calendar"
	"github.com/warp/installment-engine/money"
)

// =============================================================================
// PLAN ADJUSTMENTS - Scholarship netting, early discount, cash price
// =============================================================================

// DefaultUpfrontDiscountPercent is the standard discount offered for paying
// the full amount up front instead of in installments.
const DefaultUpfrontDiscountPercent = 10.0

var oneHundred = decimal.NewFromInt(100)

// DistributeScholarship nets a scholarship off the billable total and plans
// the remainder as monthly installments starting at firstDue.
//
// A scholarship covering or exceeding the total is a valid business state,
// not an error: the result is an empty plan, nothing is owed. The first due
// date always comes from the caller; this function never reads the clock.
func DistributeScholarship(total, scholarship money.Money, installmentCount int, firstDue calendar.Date, cal calendar.HolidayCalendar) ([]InstallmentLine, error) {
	if !total.IsPositive() {
		return nil, money.ErrInvalidAmount
	}
	if scholarship.IsNegative() {
		return nil, money.ErrInvalidAmount
	}

	net := total.Sub(scholarship)
	if !net.IsPositive() {
		return []InstallmentLine{}, nil
	}

	return CreatePlan(PlanRequest{
		NetAmount:        net,
		InstallmentCount: installmentCount,
		FirstDueDate:     firstDue,
		Cadence:          CadenceMonthly,
		RecurrenceMonths: 1,
	}, cal)
}

// ApplyEarlyPaymentDiscount returns a copy of the plan with the first
// affectedCount lines (by sequence) reduced by discountPercent, rounded
// half-up to minor units. Remaining lines are copied unchanged.
//
// This is an incentive adjustment applied after the fact: the amounts are
// NOT re-distributed and the discounted total is whatever the per-line
// rounding produces. An affectedCount outside [0, len(plan)] is rejected,
// not clamped.
func ApplyEarlyPaymentDiscount(lines []InstallmentLine, discountPercent float64, affectedCount int) ([]InstallmentLine, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return nil, &InvalidDiscountError{
			Percent: discountPercent, AffectedCount: affectedCount, PlanLength: len(lines),
			Reason: "percent outside [0, 100]",
		}
	}
	if affectedCount < 0 || affectedCount > len(lines) {
		return nil, &InvalidDiscountError{
			Percent: discountPercent, AffectedCount: affectedCount, PlanLength: len(lines),
			Reason: "affected count outside plan",
		}
	}

	pct := decimal.NewFromFloat(discountPercent)
	out := make([]InstallmentLine, len(lines))
	copy(out, lines)
	for i := 0; i < affectedCount; i++ {
		units := decimal.NewFromInt(out[i].Amount.MinorUnits())
		discountUnits := units.Mul(pct).Div(oneHundred).Round(0).IntPart()
		out[i].Amount = money.FromMinorUnits(out[i].Amount.MinorUnits() - discountUnits)
	}
	return out, nil
}

// CalculateUpfrontPrice returns the discounted total for paying everything
// immediately: total * (1 - discountPercent/100), rounded half-up to minor
// units. Pure arithmetic, no date logic.
func CalculateUpfrontPrice(total money.Money, discountPercent float64) (money.Money, error) {
	if !total.IsPositive() {
		return money.Money{}, money.ErrInvalidAmount
	}
	if discountPercent < 0 || discountPercent > 100 {
		return money.Money{}, &InvalidDiscountError{
			Percent: discountPercent,
			Reason:  "percent outside [0, 100]",
		}
	}

	pct := decimal.NewFromFloat(discountPercent)
	units := decimal.NewFromInt(total.MinorUnits())
	kept := units.Mul(oneHundred.Sub(pct)).Div(oneHundred).Round(0).IntPart()
	return money.FromMinorUnits(kept), nil
}
