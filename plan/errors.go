/*
errors.go - Plan-level validation errors

Amount and count violations are owned by the money package and propagate
from here unchanged, so callers can errors.Is against money.ErrInvalidAmount
and friends no matter which entry point raised them.
*/
package plan

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRecurrence is returned when the recurrence configuration
	// cannot produce a strictly advancing due-date sequence.
	ErrInvalidRecurrence = errors.New("invalid recurrence configuration")

	// ErrInvalidDiscount is returned when a discount percentage is outside
	// [0, 100] or an affected-line count is outside the plan.
	ErrInvalidDiscount = errors.New("invalid discount")
)

// InvalidDiscountError reports which discount parameter was rejected.
type InvalidDiscountError struct {
	Percent       float64
	AffectedCount int
	PlanLength    int
	Reason        string
}

func (e *InvalidDiscountError) Error() string {
	return fmt.Sprintf("invalid discount: %s (percent=%v affected=%d plan=%d)",
		e.Reason, e.Percent, e.AffectedCount, e.PlanLength)
}

func (e *InvalidDiscountError) Unwrap() error {
	return ErrInvalidDiscount
}
