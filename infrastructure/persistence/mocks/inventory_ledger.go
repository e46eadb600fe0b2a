package mocks

import (
	"context"
	"sync"

	"shopcore/domain/inventory"
	"shopcore/domain/shared"
)

// MockInventoryLedger in-memory stock ledger with the same conditional
// decrement semantics as the SQL implementation: the check and the
// decrement happen under one lock, so stock never goes negative under
// concurrent checkouts.
type MockInventoryLedger struct {
	stock map[string]int
	mu    sync.Mutex
}

// NewMockInventoryLedger creates a ledger with the given initial stock.
func NewMockInventoryLedger(initial map[string]int) *MockInventoryLedger {
	stock := make(map[string]int, len(initial))
	for ref, qty := range initial {
		stock[ref] = qty
	}
	return &MockInventoryLedger{stock: stock}
}

// SetStock sets the on-hand quantity for a product.
func (l *MockInventoryLedger) SetStock(productRef string, quantity int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stock[productRef] = quantity
}

func (l *MockInventoryLedger) Available(ctx context.Context, productRef string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	available, exists := l.stock[productRef]
	if !exists {
		return 0, shared.NewNotFoundError("product")
	}
	return available, nil
}

func (l *MockInventoryLedger) TryDecrement(ctx context.Context, productRef string, quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("product", "quantity", "must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	available, exists := l.stock[productRef]
	if !exists {
		return shared.NewNotFoundError("product")
	}
	if available < quantity {
		return inventory.NewInsufficientStockError(productRef, quantity, available)
	}
	l.stock[productRef] = available - quantity
	return nil
}

func (l *MockInventoryLedger) Increment(ctx context.Context, productRef string, quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("product", "quantity", "must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.stock[productRef]; !exists {
		return shared.NewNotFoundError("product")
	}
	l.stock[productRef] += quantity
	return nil
}

// Compile-time interface implementation check
var _ inventory.Ledger = (*MockInventoryLedger)(nil)
