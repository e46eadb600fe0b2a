/*
Package inventory - stock ledger contract consumed by the order subdomain.

The ledger treats a product's stock as a single non-negative counter with
atomic conditional decrement. Running out of stock is a normal outcome and
is reported as a typed result, not an infrastructure failure; only store
unavailability surfaces as a plain error.
*/
package inventory

import (
	"context"
	"errors"
	"fmt"

	"shopcore/domain/shared"
)

// ErrInsufficientStock sentinel for errors.Is() checks.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError names the product that could not cover the
// requested quantity and how much is actually available, so the boundary
// layer can build a message without further lookups.
type InsufficientStockError struct {
	ProductRef string
	Requested  int
	Available  int
	stack      []uintptr
}

func NewInsufficientStockError(productRef string, requested, available int) error {
	return &InsufficientStockError{
		ProductRef: productRef,
		Requested:  requested,
		Available:  available,
		stack:      shared.CaptureStack(3),
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductRef, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Stack implements shared.Stacker.
func (e *InsufficientStockError) Stack() []string {
	return shared.FormatStack(e.stack)
}

// Ledger is the port onto the external product store.
//
// TryDecrement must be a single atomic conditional update at the storage
// layer (check stock >= qty and subtract in one statement), never a
// read-then-write from the caller's side.
type Ledger interface {
	// Available returns the current stock counter (read-only check).
	Available(ctx context.Context, productRef string) (int, error)

	// TryDecrement atomically subtracts qty if enough stock remains.
	// Returns *InsufficientStockError as a normal outcome when it does not.
	TryDecrement(ctx context.Context, productRef string, qty int) error

	// Increment atomically adds qty back. No upper bound is enforced.
	Increment(ctx context.Context, productRef string, qty int) error
}

// Adjustment is one product/quantity pair of a multi-line stock effect.
type Adjustment struct {
	ProductRef string
	Quantity   int
}

// DecrementAll applies every adjustment or none of them.
//
// The ledger operations are per-product and not globally transactional,
// so all-or-nothing is achieved by compensation: decrements are applied
// in order, and on the first failure every line already decremented is
// incremented back before the error is returned. Compensation reuses
// the caller's context: when the ledger runs inside an ambient
// transaction the increments land in that same transaction, so a
// rollback cannot leave them committed on their own.
func DecrementAll(ctx context.Context, ledger Ledger, adjs []Adjustment) error {
	for i, adj := range adjs {
		if err := ledger.TryDecrement(ctx, adj.ProductRef, adj.Quantity); err != nil {
			rollbackDecrements(ctx, ledger, adjs[:i])
			return err
		}
	}
	return nil
}

// IncrementAll restores every adjustment. Used for restock on cancellation.
func IncrementAll(ctx context.Context, ledger Ledger, adjs []Adjustment) error {
	for _, adj := range adjs {
		if err := ledger.Increment(ctx, adj.ProductRef, adj.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func rollbackDecrements(ctx context.Context, ledger Ledger, applied []Adjustment) {
	for _, adj := range applied {
		// Increment always succeeds apart from store unavailability; a
		// failed compensation leaves stock under-counted, which errs on
		// the safe side (never oversells).
		_ = ledger.Increment(ctx, adj.ProductRef, adj.Quantity)
	}
}
