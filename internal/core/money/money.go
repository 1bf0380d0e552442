// Package money provides decimal-safe currency arithmetic. Amounts are held
// as arbitrary-precision decimals end to end; binary floats never touch a
// comparison, so the reconciliation tolerance behaves the same regardless of
// magnitude.
package money

import "github.com/shopspring/decimal"

// tolerance is the absolute difference below which two currency amounts are
// considered reconciled. It is fixed at construction; callers read it
// through Tolerance.
var tolerance = decimal.New(1, -2)

// Tolerance returns the reconciliation tolerance of 0.01.
func Tolerance() decimal.Decimal {
	return tolerance
}

func Zero() decimal.Decimal {
	return decimal.Zero
}

// FromString parses a decimal amount such as "150.00".
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal amount and panics on malformed input.
// Intended for constants and tests only.
func MustFromString(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

func Sub(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b)
}

// Mul multiplies an amount by a scalar quantity, e.g. unit price by quantity.
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b)
}

// Compare returns -1, 0 or 1 as a is less than, equal to or greater than b.
func Compare(a, b decimal.Decimal) int {
	return a.Cmp(b)
}

func Equal(a, b decimal.Decimal) bool {
	return a.Cmp(b) == 0
}

func IsZero(a decimal.Decimal) bool {
	return a.IsZero()
}

func IsNegative(a decimal.Decimal) bool {
	return a.IsNegative()
}

func IsPositive(a decimal.Decimal) bool {
	return a.IsPositive()
}

// Sum adds a list of amounts, returning zero for an empty list.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// WithinTolerance reports whether two amounts agree within the
// reconciliation tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().Cmp(tolerance) <= 0
}

// Format renders an amount with exactly two fractional digits.
func Format(a decimal.Decimal) string {
	return a.StringFixed(2)
}
