package shared

import (
	"errors"
	"fmt"
	"math"
)

// Money value object. Amounts are stored in the minor currency unit
// (e.g. satang for THB), so arithmetic stays integral.
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a Money value object.
func NewMoney(amount int64, currency string) *Money {
	return &Money{
		amount:   amount,
		currency: currency,
	}
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns a new Money holding the sum.
func (m Money) Add(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot add money with different currencies")
	}

	return &Money{
		amount:   m.amount + other.amount,
		currency: m.currency,
	}, nil
}

// Subtract returns a new Money holding the difference.
func (m Money) Subtract(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot subtract money with different currencies")
	}

	return &Money{
		amount:   m.amount - other.amount,
		currency: m.currency,
	}, nil
}

// Multiply returns a new Money scaled by quantity, with overflow check.
func (m Money) Multiply(quantity int) (*Money, error) {
	if quantity < 0 {
		return nil, errors.New("cannot multiply money by a negative quantity")
	}
	if quantity != 0 && m.amount > math.MaxInt64/int64(quantity) {
		return nil, fmt.Errorf("money overflow: %d * %d", m.amount, quantity)
	}

	return &Money{
		amount:   m.amount * int64(quantity),
		currency: m.currency,
	}, nil
}

// PercentRoundHalfUp returns rateBps basis points of the amount, rounded
// half-up to the nearest minor unit. 700 bps = 7%.
func (m Money) PercentRoundHalfUp(rateBps int64) *Money {
	// (amount*rate + 5000) / 10000 is round-half-up for non-negative
	// amounts without going through floating point.
	raw := m.amount*rateBps + 5000
	return &Money{
		amount:   raw / 10000,
		currency: m.currency,
	}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsGreaterThan compares amounts.
func (m Money) IsGreaterThan(other Money) bool {
	return m.amount > other.amount
}

// IsGreaterThanOrEqual compares amounts.
func (m Money) IsGreaterThanOrEqual(other Money) bool {
	return m.amount >= other.amount
}

// Equals compares amount and currency.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}
