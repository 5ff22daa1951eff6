package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/installment-engine/money"
)

func sum(parts []int64) int64 {
	var total int64
	for _, p := range parts {
		total += p
	}
	return total
}

func TestDistribute_EqualDivision_AllPartsEqual(t *testing.T) {
	// GIVEN: A total evenly divisible by the part count
	// WHEN: Distributing
	// THEN: Every part is identical and the sum is exact

	parts, err := money.Distribute(120000, 12)
	require.NoError(t, err)
	require.Len(t, parts, 12)

	for i, p := range parts {
		assert.Equal(t, int64(10000), p, "part %d", i)
	}
	assert.Equal(t, int64(120000), sum(parts))
}

func TestDistribute_Remainder_FrontLoadedOntoEarliestParts(t *testing.T) {
	// GIVEN: 1000.07 split over 10 installments
	// WHEN: Distributing
	// THEN: The first 7 parts carry the extra cent, the last 3 do not

	parts, err := money.Distribute(100007, 10)
	require.NoError(t, err)
	require.Len(t, parts, 10)

	for i := 0; i < 7; i++ {
		assert.Equal(t, int64(10001), parts[i], "part %d should carry a remainder cent", i)
	}
	for i := 7; i < 10; i++ {
		assert.Equal(t, int64(10000), parts[i], "part %d should not carry a remainder cent", i)
	}
	assert.Equal(t, int64(100007), sum(parts))
}

func TestDistribute_Deterministic(t *testing.T) {
	first, err := money.Distribute(99991, 7)
	require.NoError(t, err)
	second, err := money.Distribute(99991, 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDistribute_SumInvariant_AwkwardTotals(t *testing.T) {
	cases := []struct {
		total int64
		parts int
	}{
		{100007, 10},
		{1, 1},
		{3, 2},
		{999999, 13},
		{500000, 7},
		{31, 30},
	}

	for _, tc := range cases {
		parts, err := money.Distribute(tc.total, tc.parts)
		require.NoError(t, err, "total=%d parts=%d", tc.total, tc.parts)
		assert.Equal(t, tc.total, sum(parts), "total=%d parts=%d", tc.total, tc.parts)
		for i, p := range parts {
			assert.Positive(t, p, "part %d of total=%d parts=%d", i, tc.total, tc.parts)
		}
	}
}

func TestDistribute_ZeroTotal_Rejected(t *testing.T) {
	_, err := money.Distribute(0, 5)
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestDistribute_NegativeTotal_Rejected(t *testing.T) {
	_, err := money.Distribute(-100, 5)
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestDistribute_ZeroParts_Rejected(t *testing.T) {
	_, err := money.Distribute(100, 0)
	assert.ErrorIs(t, err, money.ErrInvalidCount)
}

func TestDistribute_TotalSmallerThanParts_Rejected(t *testing.T) {
	// GIVEN: 4 cents over 10 parts
	// THEN: Rejected, because at least one part would be zero

	_, err := money.Distribute(4, 10)
	assert.ErrorIs(t, err, money.ErrInsufficientAmount)

	var insufficient *money.InsufficientAmountError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(4), insufficient.TotalMinorUnits)
	assert.Equal(t, 10, insufficient.Parts)
}

func TestDistributeMoney_WrapsUnits(t *testing.T) {
	parts, err := money.DistributeMoney(money.MustParse("1000.07"), 10)
	require.NoError(t, err)

	total := money.FromMinorUnits(0)
	for _, p := range parts {
		total = total.Add(p)
	}
	assert.True(t, total.Equal(money.MustParse("1000.07")))
}
