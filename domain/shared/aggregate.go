package shared

// AggregateRoot is the entry point of a consistency boundary.
// All modifications to entities inside the aggregate go through it, and
// it records the domain events those modifications produce.
type AggregateRoot interface {
	// ID returns the globally unique identifier.
	ID() string

	// Version returns the optimistic-lock version.
	Version() int

	// PullEvents returns and clears the recorded domain events.
	// The unit of work calls this inside the transaction to move events
	// into the outbox table exactly once.
	PullEvents() []DomainEvent
}

// Entity has identity; equality is by ID, not by attribute values.
type Entity interface {
	ID() string
}

// ValueObject is immutable and compared by attribute values. Go cannot
// enforce immutability, so implementations rely on private fields and
// copy-on-write methods.
type ValueObject interface {
	Equals(other interface{}) bool
}
