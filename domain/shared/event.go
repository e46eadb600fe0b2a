package shared

import (
	"fmt"
	"time"
)

// DomainEvent is a fact recorded by an aggregate when its state changes.
// Events are collected by the unit of work and written to the outbox
// table in the same transaction as the state change.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// ValidateEvent rejects structurally broken events before they reach the
// outbox table.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}

	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}

	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}

	return nil
}
