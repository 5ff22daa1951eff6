package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/installment-engine/money"
)

func TestMoney_DecimalRoundTrip(t *testing.T) {
	cases := []struct {
		in    string
		units int64
	}{
		{"0.01", 1},
		{"1000.07", 100007},
		{"50.00", 5000},
		{"75.00", 7500},
		{"0.99", 99},
	}

	for _, tc := range cases {
		m := money.FromDecimal(decimal.RequireFromString(tc.in))
		assert.Equal(t, tc.units, m.MinorUnits(), "input %s", tc.in)
		assert.Equal(t, tc.in, m.String(), "round trip %s", tc.in)
	}
}

func TestMoney_RoundHalfUpAtSecondDecimal(t *testing.T) {
	// Half a cent rounds up, anything below rounds down.
	assert.Equal(t, int64(1001), money.FromDecimal(decimal.RequireFromString("10.005")).MinorUnits())
	assert.Equal(t, int64(1000), money.FromDecimal(decimal.RequireFromString("10.004")).MinorUnits())
	assert.Equal(t, int64(1001), money.FromDecimal(decimal.RequireFromString("10.0051")).MinorUnits())
}

func TestMoney_MustParse_Malformed_ReturnsZero(t *testing.T) {
	assert.True(t, money.MustParse("not-a-number").IsZero())
}

func TestMoney_Arithmetic(t *testing.T) {
	a := money.MustParse("10.50")
	b := money.MustParse("0.25")

	assert.Equal(t, int64(1075), a.Add(b).MinorUnits())
	assert.Equal(t, int64(1025), a.Sub(b).MinorUnits())
	assert.True(t, b.LessThan(a))
	assert.True(t, a.GreaterThan(b))
	assert.True(t, a.Sub(a).IsZero())
	assert.True(t, b.Sub(a).IsNegative())
}
