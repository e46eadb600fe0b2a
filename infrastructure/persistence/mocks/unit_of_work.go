package mocks

import (
	"context"
	"sync"

	"shopcore/domain/shared"
)

// MockUnitOfWorkFactory hands out a fresh MockUnitOfWork per operation,
// the way the MySQL factory does, and aggregates the events every one
// of them collected so tests can assert on the whole outbox stream.
type MockUnitOfWorkFactory struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

// NewMockUnitOfWorkFactory creates the factory.
func NewMockUnitOfWorkFactory() *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{}
}

// New builds a unit of work that reports its events back here.
func (f *MockUnitOfWorkFactory) New() shared.UnitOfWork {
	return &MockUnitOfWork{sink: f}
}

// CollectedEvents returns every event pulled across all units of work.
func (f *MockUnitOfWorkFactory) CollectedEvents() []shared.DomainEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	events := make([]shared.DomainEvent, len(f.events))
	copy(events, f.events)
	return events
}

func (f *MockUnitOfWorkFactory) collect(events []shared.DomainEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, events...)
}

// MockUnitOfWork runs the business function without a real transaction
// but still collects events from registered aggregates. One instance
// serves one operation; registered aggregates are never shared across
// concurrent executions.
type MockUnitOfWork struct {
	mu         sync.Mutex
	aggregates []shared.AggregateRoot
	events     []shared.DomainEvent
	sink       *MockUnitOfWorkFactory
}

// Execute runs the business function and pulls events from registered
// aggregates. There is no rollback; a failed function simply returns
// its error.
func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	u.aggregates = u.aggregates[:0]
	u.mu.Unlock()

	if err := fn(ctx); err != nil {
		return err
	}

	u.mu.Lock()
	var pulled []shared.DomainEvent
	for _, agg := range u.aggregates {
		pulled = append(pulled, agg.PullEvents()...)
	}
	u.events = append(u.events, pulled...)
	sink := u.sink
	u.mu.Unlock()

	if sink != nil {
		sink.collect(pulled)
	}
	return nil
}

// CollectedEvents returns every event pulled by this unit of work.
func (u *MockUnitOfWork) CollectedEvents() []shared.DomainEvent {
	u.mu.Lock()
	defer u.mu.Unlock()
	events := make([]shared.DomainEvent, len(u.events))
	copy(events, u.events)
	return events
}

// RegisterNew registers a newly created aggregate root for event collection.
func (u *MockUnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterDirty registers a modified aggregate root for event collection.
func (u *MockUnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterRemoved registers a deleted aggregate root for event collection.
func (u *MockUnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.aggregates = append(u.aggregates, aggregate)
}

// Compile-time interface implementation checks
var (
	_ shared.UnitOfWork        = (*MockUnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*MockUnitOfWorkFactory)(nil)
)
