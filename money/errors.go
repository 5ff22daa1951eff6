/*
errors.go - Validation errors for monetary operations

All amount-level validation failures live here so callers can test them
with errors.Is regardless of which operation surfaced them. The plan
package propagates these unchanged.
*/
package money

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidAmount is returned when an amount is zero or negative where a
	// positive amount is required.
	ErrInvalidAmount = errors.New("invalid amount: must be positive")

	// ErrInvalidCount is returned when an installment or part count is not
	// at least one.
	ErrInvalidCount = errors.New("invalid count: must be positive")

	// ErrInsufficientAmount is returned when a total holds fewer minor units
	// than the requested part count, which would force a zero-valued part.
	ErrInsufficientAmount = errors.New("insufficient amount for part count")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientAmountError reports how short the total fell.
type InsufficientAmountError struct {
	TotalMinorUnits int64
	Parts           int
}

func (e *InsufficientAmountError) Error() string {
	return fmt.Sprintf("insufficient amount: %d minor units cannot be split into %d positive parts",
		e.TotalMinorUnits, e.Parts)
}

func (e *InsufficientAmountError) Unwrap() error {
	return ErrInsufficientAmount
}
