/*
Package order - order subdomain error definitions.

Design notes:
 1. Sentinel errors support errors.Is() checks.
 2. Constructors capture the stack at creation so logs point at the
    failure site, not the handler.
 3. Business-rule violations (already paid, illegal transition) are
    expected outcomes returned as typed results; only infrastructure
    failures propagate as plain errors.
*/
package order

import (
	"errors"
	"fmt"

	"shopcore/domain/shared"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrOrderNotFound no order with the given ID
	ErrOrderNotFound = errors.New("order not found")

	// ErrConcurrentModification optimistic lock failure; caller should retry
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")

	// ErrIllegalTransition the requested status change is not in the
	// transition table
	ErrIllegalTransition = errors.New("illegal order status transition")

	// ErrAlreadyPaid payment was already confirmed for this order.
	// This is the idempotency guard against duplicate webhook delivery.
	ErrAlreadyPaid = errors.New("order is already paid")

	// ErrEmptyCart checkout was attempted with no cart lines
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidOwner an order needs exactly one owner reference
	ErrInvalidOwner = errors.New("order owner reference is invalid")

	// ErrInvalidQuantity line quantity must be at least one
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrNegativeGrandTotal derived grand total went below zero
	ErrNegativeGrandTotal = errors.New("order grand total must not be negative")

	// ErrStockAlreadyApplied the stock decrement was already applied;
	// applying it twice would double-decrement inventory
	ErrStockAlreadyApplied = errors.New("stock decrement already applied")

	// ErrStockNotApplied a restock was requested but no decrement is
	// outstanding
	ErrStockNotApplied = errors.New("no stock decrement to release")

	// ErrPointsAlreadyAwarded loyalty accrual already happened for this order
	ErrPointsAlreadyAwarded = errors.New("loyalty points already awarded")

	// ErrUnknownStatus the requested status is not part of the lifecycle
	ErrUnknownStatus = errors.New("unknown order status")
)

// ============================================================================
// Typed errors carrying structured detail
// ============================================================================

// IllegalTransitionError names both states so the boundary layer can build
// a message without knowing the transition table.
type IllegalTransitionError struct {
	From  Status
	To    Status
	stack []uintptr
}

// NewIllegalTransitionError creates an illegal-transition error with stack.
func NewIllegalTransitionError(from, to Status) error {
	return &IllegalTransitionError{
		From:  from,
		To:    to,
		stack: shared.CaptureStack(3),
	}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Stack implements shared.Stacker.
func (e *IllegalTransitionError) Stack() []string {
	return shared.FormatStack(e.stack)
}

// ============================================================================
// Constructors for sentinel-backed errors
// ============================================================================

// NewOrderNotFoundError creates an order-not-found error with stack.
// Supports errors.Is(err, ErrOrderNotFound) and shared.Stacker.
func NewOrderNotFoundError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrOrderNotFound,
		entity:   "order",
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock error.
func NewConcurrentModificationError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrConcurrentModification,
		entity:   "order",
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// NewAlreadyPaidError creates an already-paid error.
func NewAlreadyPaidError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrAlreadyPaid,
		entity:   "order",
		message:  "order " + orderID + " is already paid",
		stack:    shared.CaptureStack(3),
	}
}

// NewEmptyCartError creates an empty-cart validation error.
func NewEmptyCartError() error {
	return &orderDomainError{
		sentinel: ErrEmptyCart,
		entity:   "order",
		field:    "items",
		message:  "cart is empty, nothing to check out",
		stack:    shared.CaptureStack(3),
	}
}

// NewUnknownStatusError creates an unknown-status error.
func NewUnknownStatusError(status string) error {
	return &orderDomainError{
		sentinel: ErrUnknownStatus,
		entity:   "order",
		field:    "status",
		message:  "unknown order status: " + status,
		stack:    shared.CaptureStack(3),
	}
}

// ============================================================================
// Internal error struct
// ============================================================================

// orderDomainError implements error, Unwrap and shared.Stacker.
type orderDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string {
	return e.message
}

func (e *orderDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker.
func (e *orderDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}

	return shared.FormatStack(e.stack)
}
