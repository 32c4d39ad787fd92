package kernel

import (
	"fmt"

	"ferremas/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Currency is the only currency the store trades in. Amounts are Chilean
// pesos and carry no fractional units in practice, but Money keeps decimal
// precision so derived values never accumulate rounding drift.
const Currency = "CLP"

// Money is a value object representing a non-negative amount of Chilean
// pesos. The zero value is a valid representation of zero pesos.
//
// Money is immutable: arithmetic methods return new values.
//
// Example usage:
//
//	price, err := kernel.NewMoneyFromInt(5990)
//	if err != nil {
//	    return err
//	}
//	total := price.MulInt(3) // 17970 CLP
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money value from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromInt creates a Money value from whole pesos.
// Returns an error if the amount is negative.
func NewMoneyFromInt(amount int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(amount))
}

// MustNewMoneyFromInt is like NewMoneyFromInt but panics on a negative
// amount. Intended for static policy constants known valid at compile time.
func MustNewMoneyFromInt(amount int64) Money {
	m, err := NewMoneyFromInt(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns a Money value of zero pesos.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulInt returns the Money value multiplied by a whole factor.
func (m Money) MulInt(factor int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(factor))}
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two Money values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the decimal representation of the amount, e.g. "5990".
func (m Money) String() string {
	return m.amount.String()
}
