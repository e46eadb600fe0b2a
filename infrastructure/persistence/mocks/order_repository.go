package mocks

import (
	"context"
	"sort"
	"sync"

	"shopcore/domain/order"
)

// MockOrderRepository in-memory order repository. Mirrors the MySQL
// implementation's optimistic locking so concurrency behavior can be
// exercised without a database.
type MockOrderRepository struct {
	orders map[string]*order.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates an empty in-memory repository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*order.Order),
	}
}

// Save stores the aggregate, rejecting stale versions the same way the
// versioned UPDATE does.
func (r *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !o.IsNew() {
		existing, exists := r.orders[o.ID()]
		if !exists {
			return order.NewOrderNotFoundError(o.ID())
		}
		if existing.Version() != o.Version() {
			return order.NewConcurrentModificationError(o.ID())
		}
	}

	o.IncrementVersionForSave()
	r.orders[o.ID()] = o

	// Events are not published here; the unit of work pulls them into
	// the outbox before commit.

	return nil
}

func (r *MockOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.orders[id]
	if !exists {
		return nil, order.NewOrderNotFoundError(id)
	}
	return o, nil
}

func (r *MockOrderRepository) FindByOwner(ctx context.Context, owner order.OwnerRef) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*order.Order
	for _, o := range r.orders {
		if o.Owner().Equals(owner) {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})
	return orders, nil
}

// Compile-time interface implementation check
var _ order.Repository = (*MockOrderRepository)(nil)
