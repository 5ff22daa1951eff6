package money

// =============================================================================
// DISTRIBUTION - Split a total into N parts with zero rounding leakage
// =============================================================================

// Distribute splits totalMinorUnits into parts non-negative integers that sum
// exactly to the total. Every part receives floor(total/parts); the remainder
// is front-loaded one minor unit at a time onto the earliest parts, so the
// result is deterministic and stable for identical inputs.
//
// Example: Distribute(100007, 10) -> seven parts of 10001, three of 10000.
func Distribute(totalMinorUnits int64, parts int) ([]int64, error) {
	if totalMinorUnits <= 0 {
		return nil, ErrInvalidAmount
	}
	if parts <= 0 {
		return nil, ErrInvalidCount
	}
	if totalMinorUnits < int64(parts) {
		return nil, &InsufficientAmountError{TotalMinorUnits: totalMinorUnits, Parts: parts}
	}

	base := totalMinorUnits / int64(parts)
	remainder := totalMinorUnits % int64(parts)

	out := make([]int64, parts)
	for i := range out {
		out[i] = base
		if int64(i) < remainder {
			out[i]++
		}
	}
	return out, nil
}

// DistributeMoney is the Money-typed convenience wrapper around Distribute.
func DistributeMoney(total Money, parts int) ([]Money, error) {
	units, err := Distribute(total.MinorUnits(), parts)
	if err != nil {
		return nil, err
	}
	out := make([]Money, len(units))
	for i, u := range units {
		out[i] = FromMinorUnits(u)
	}
	return out, nil
}
