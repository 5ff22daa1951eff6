/*
Package plan generates installment payment schedules.

PURPOSE:
  Converts a net payable amount and an installment count into a payment
  schedule with exact-cent amounts and business-day-aware due dates. This is
  the orchestration layer over the money and calendar packages: money owns
  the remainder-exact split, calendar owns date placement, and this package
  wires them across the recurrence sequence.

KEY CONCEPTS:
  - PlanRequest: the caller's description of what to generate
  - InstallmentLine: one scheduled payment (sequence, amount, due date)
  - Nominal vs due date: recurrence runs on nominal (unshifted) dates;
    only the externally visible due date is business-day adjusted

DESIGN PRINCIPLES:
  1. Purity: no I/O, no clock reads, no globals; concurrent use is free
  2. Totality: validation failures surface before any date work; the
     engine never returns a partially valid plan
  3. Exactness: the line amounts always sum to the net amount to the cent

SEE ALSO:
  - planner.go: CreatePlan and the nominal date sequence
  - adjustments.go: Scholarship netting, early-payment discount, cash price
  - errors.go: Plan-level validation errors
*/
package plan

import (
	"github.com/warp/installment-engine/calendar"
	"github.com/warp/installment-engine/money"
)

// Cadence selects how the nominal due-date sequence advances.
type Cadence string

const (
	// CadenceMonthly advances each nominal date by RecurrenceMonths months,
	// clamping to the end of shorter months.
	CadenceMonthly Cadence = "monthly"

	// CadenceSpread spreads the installments across a year using a fixed day
	// offset of round(365 / installment count).
	CadenceSpread Cadence = "spread"
)

// PlanRequest describes the schedule to generate.
//
// An empty Cadence means CadenceMonthly. RecurrenceMonths is only consulted
// for monthly cadence and must be at least 1 there.
type PlanRequest struct {
	NetAmount        money.Money
	InstallmentCount int
	FirstDueDate     calendar.Date
	Cadence          Cadence
	RecurrenceMonths int
}

// InstallmentLine is one scheduled payment. Lines are immutable once
// returned; sequence numbers are dense from 1..N and due dates are
// non-decreasing.
type InstallmentLine struct {
	SequenceNo int
	Amount     money.Money
	DueDate    calendar.Date
}

// Total sums the line amounts of a plan.
func Total(lines []InstallmentLine) money.Money {
	total := money.FromMinorUnits(0)
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}
