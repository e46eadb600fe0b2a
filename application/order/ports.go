package order

import (
	"context"

	"shopcore/domain/order"
)

// EventKind classifies owner notifications.
type EventKind string

const (
	EventOrderConfirmed EventKind = "OrderConfirmed"
	EventStatusChanged  EventKind = "StatusChanged"
	EventPointsAwarded  EventKind = "PointsAwarded"
)

// CartSource is the external cart collaborator.
type CartSource interface {
	// ReadSnapshot returns the owner's current cart lines.
	ReadSnapshot(ctx context.Context, owner order.OwnerRef) (order.CartSnapshot, error)

	// Clear empties the owner's cart after a successful checkout.
	Clear(ctx context.Context, owner order.OwnerRef) error
}

// Notifier delivers owner notifications. Calls are fire-and-forget from
// the service's point of view: failures are logged and swallowed, and
// lifecycle correctness never depends on the channel being up.
type Notifier interface {
	Notify(ctx context.Context, owner order.OwnerRef, kind EventKind, payload map[string]any) error
}

// LoyaltyLedger is the external points collaborator.
type LoyaltyLedger interface {
	AddPoints(ctx context.Context, owner order.OwnerRef, points int) error
}
