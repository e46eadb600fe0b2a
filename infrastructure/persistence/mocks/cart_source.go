package mocks

import (
	"context"
	"sync"

	"shopcore/domain/order"
)

// MockCartSource in-memory cart keyed by owner.
type MockCartSource struct {
	carts map[string][]order.CartLine
	mu    sync.Mutex

	// ClearErr, when set, is returned from Clear. Lets tests exercise
	// the checkout path where cart clearing fails after commit.
	ClearErr error

	clearedOwners []order.OwnerRef
}

// NewMockCartSource creates an empty cart source.
func NewMockCartSource() *MockCartSource {
	return &MockCartSource{
		carts: make(map[string][]order.CartLine),
	}
}

// SetCart replaces the owner's cart contents.
func (s *MockCartSource) SetCart(owner order.OwnerRef, lines []order.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[owner.String()] = lines
}

func (s *MockCartSource) ReadSnapshot(ctx context.Context, owner order.OwnerRef) (order.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[owner.String()]
	copied := make([]order.CartLine, len(lines))
	copy(copied, lines)
	return order.CartSnapshot{Lines: copied}, nil
}

func (s *MockCartSource) Clear(ctx context.Context, owner order.OwnerRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ClearErr != nil {
		return s.ClearErr
	}
	delete(s.carts, owner.String())
	s.clearedOwners = append(s.clearedOwners, owner)
	return nil
}

// ClearedOwners returns the owners whose carts were cleared.
func (s *MockCartSource) ClearedOwners() []order.OwnerRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	owners := make([]order.OwnerRef, len(s.clearedOwners))
	copy(owners, s.clearedOwners)
	return owners
}
