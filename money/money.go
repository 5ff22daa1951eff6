/*
Package money provides exact-cent monetary arithmetic for installment plans.

PURPOSE:
  All amounts in the engine are held as integer minor units (cents) so that
  splitting a total across N installments never leaks or invents a cent.
  Decimal values exist only at the API boundary.

KEY CONCEPTS IN THIS FILE (money.go):
  - Money: an amount as an int64 count of minor units
  - Boundary conversion: decimal <-> minor units, round-half-up at 2 places

DESIGN PRINCIPLES:
  1. Integer core: no float arithmetic ever touches a stored amount
  2. Precision: decimal.Decimal handles the single boundary rounding step
  3. Immutability: Money is a value type; operations return new values

SEE ALSO:
  - distribute.go: Remainder-exact splitting of a total into N parts
  - errors.go: Validation errors shared by this package
*/
package money

import (
	"github.com/shopspring/decimal"
)

// minorUnitPlaces is the decimal precision of the currency (2 = cents).
const minorUnitPlaces = 2

var minorUnitFactor = decimal.NewFromInt(100)

// Money is a non-negative monetary amount held as integer minor units.
type Money struct {
	units int64
}

// FromMinorUnits builds a Money directly from a minor-unit count.
func FromMinorUnits(units int64) Money {
	return Money{units: units}
}

// FromDecimal converts a decimal amount to Money, rounding half-up at the
// second decimal place. This is the only place rounding happens on input.
func FromDecimal(d decimal.Decimal) Money {
	return Money{units: d.Round(minorUnitPlaces).Mul(minorUnitFactor).IntPart()}
}

// FromFloat converts a float amount to Money via decimal rounding.
// Intended for API-boundary use only.
func FromFloat(f float64) Money {
	return FromDecimal(decimal.NewFromFloat(f))
}

// MustParse converts a decimal string ("1000.07") to Money.
// Returns zero Money on malformed input.
func MustParse(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}
	}
	return FromDecimal(d)
}

// MinorUnits returns the amount as integer minor units.
func (m Money) MinorUnits() int64 { return m.units }

// Decimal returns the amount as a decimal number of major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.units).Div(minorUnitFactor)
}

// Float64 returns the amount as a float for API responses.
func (m Money) Float64() float64 {
	f, _ := m.Decimal().Float64()
	return f
}

func (m Money) Add(o Money) Money { return Money{units: m.units + o.units} }
func (m Money) Sub(o Money) Money { return Money{units: m.units - o.units} }

func (m Money) IsZero() bool     { return m.units == 0 }
func (m Money) IsPositive() bool { return m.units > 0 }
func (m Money) IsNegative() bool { return m.units < 0 }

func (m Money) Equal(o Money) bool       { return m.units == o.units }
func (m Money) LessThan(o Money) bool    { return m.units < o.units }
func (m Money) GreaterThan(o Money) bool { return m.units > o.units }

func (m Money) String() string {
	return m.Decimal().StringFixed(minorUnitPlaces)
}
