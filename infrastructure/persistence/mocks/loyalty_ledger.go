package mocks

import (
	"context"
	"sync"

	"shopcore/domain/order"
)

// MockLoyaltyLedger in-memory points balance per owner.
type MockLoyaltyLedger struct {
	balances map[string]int
	mu       sync.Mutex

	// AddErr, when set, is returned from AddPoints.
	AddErr error
}

// NewMockLoyaltyLedger creates an empty loyalty ledger.
func NewMockLoyaltyLedger() *MockLoyaltyLedger {
	return &MockLoyaltyLedger{
		balances: make(map[string]int),
	}
}

func (l *MockLoyaltyLedger) AddPoints(ctx context.Context, owner order.OwnerRef, points int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.AddErr != nil {
		return l.AddErr
	}
	l.balances[owner.String()] += points
	return nil
}

// Balance returns the owner's accumulated points.
func (l *MockLoyaltyLedger) Balance(owner order.OwnerRef) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[owner.String()]
}
