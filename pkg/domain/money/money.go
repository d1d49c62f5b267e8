// Package money provides the Money value object used across the bank core.
// Amounts are stored as an int64 count of cents (the smallest currency unit)
// so that balance arithmetic is exact. The bank is single-currency; every
// Money value carries two decimal places.
package money

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// centsPerUnit is the scale factor between the display unit and the stored unit.
const centsPerUnit = 100

var (
	// ErrTooManyDecimals is returned when an amount has more than two decimal places.
	ErrTooManyDecimals = errors.New("amount has more than 2 decimal places")

	// ErrAmountOutOfRange is returned when an amount cannot be represented in cents as an int64.
	ErrAmountOutOfRange = errors.New("amount exceeds maximum safe value")
)

// Money represents a monetary value as cents.
// Invariants:
//   - The amount is always stored in cents, never as a float.
//   - A Money value may be negative (loan balances, overdrawn checking).
type Money struct {
	cents int64
}

// Zero is the zero monetary value.
var Zero = Money{}

// New creates a Money value from a display-unit amount (e.g. 12.34).
// Invariants enforced:
//   - The amount must not have more than two decimal places.
//   - The amount must fit in an int64 once scaled to cents.
//
// Returns Money or an error if any invariant is violated.
func New(amount float64) (Money, error) {
	// Reject sub-cent precision before converting. Formatting at high
	// precision and trimming zeros avoids binary-float false positives
	// for values like 0.1.
	s := fmt.Sprintf("%.10f", amount)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac := strings.TrimRight(s[i+1:], "0")
		if len(frac) > 2 {
			return Money{}, ErrTooManyDecimals
		}
	}

	r, ok := new(big.Rat).SetString(fmt.Sprintf("%.2f", amount))
	if !ok {
		return Money{}, fmt.Errorf("invalid amount: %f", amount)
	}
	r.Mul(r, big.NewRat(centsPerUnit, 1))
	if !r.IsInt() || !r.Num().IsInt64() {
		return Money{}, ErrAmountOutOfRange
	}
	return Money{cents: r.Num().Int64()}, nil
}

// MustNew is New that panics on error. For constants and tests only.
func MustNew(amount float64) Money {
	m, err := New(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// FromCents creates a Money value directly from cents. Used for hydrating
// persisted state, where the stored value is already in the smallest unit.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float returns the amount in display units. For formatting only; arithmetic
// stays in cents.
func (m Money) Float() float64 {
	return float64(m.cents) / centsPerUnit
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// Negate returns -m.
func (m Money) Negate() Money {
	return Money{cents: -m.cents}
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money {
	if m.cents < 0 {
		return m.Negate()
	}
	return m
}

// MulRound multiplies by a scalar factor and rounds half away from zero to
// the nearest cent. Interest and amortization computations round exactly once,
// here.
func (m Money) MulRound(factor float64) Money {
	return Money{cents: int64(math.Round(float64(m.cents) * factor))}
}

// Equals reports whether the two amounts are identical.
func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// String formats the amount with two decimal places.
func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Float())
}
