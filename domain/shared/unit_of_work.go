package shared

import "context"

// UnitOfWork manages transaction boundaries and aggregate event collection.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

// UnitOfWorkFactory builds fresh units of work, one per request.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists domain events for asynchronous publishing.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
