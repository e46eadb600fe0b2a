package order

import (
	"time"

	"shopcore/domain/shared"
)

type OrderPlacedEvent struct {
	orderID    string
	owner      OwnerRef
	grandTotal shared.Money
	occurredOn time.Time
}

func NewOrderPlacedEvent(orderID string, owner OwnerRef, grandTotal shared.Money) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		orderID:    orderID,
		owner:      owner,
		grandTotal: grandTotal,
		occurredOn: time.Now(),
	}
}

func (e *OrderPlacedEvent) EventName() string        { return "order.placed" }
func (e *OrderPlacedEvent) OccurredOn() time.Time    { return e.occurredOn }
func (e *OrderPlacedEvent) GetAggregateID() string   { return e.orderID }
func (e *OrderPlacedEvent) OrderID() string          { return e.orderID }
func (e *OrderPlacedEvent) Owner() OwnerRef          { return e.owner }
func (e *OrderPlacedEvent) GrandTotal() shared.Money { return e.grandTotal }

type PaymentConfirmedEvent struct {
	orderID          string
	paymentReference string
	status           Status
	occurredOn       time.Time
}

func NewPaymentConfirmedEvent(orderID, paymentReference string, status Status) *PaymentConfirmedEvent {
	return &PaymentConfirmedEvent{
		orderID:          orderID,
		paymentReference: paymentReference,
		status:           status,
		occurredOn:       time.Now(),
	}
}

func (e *PaymentConfirmedEvent) EventName() string        { return "order.payment_confirmed" }
func (e *PaymentConfirmedEvent) OccurredOn() time.Time    { return e.occurredOn }
func (e *PaymentConfirmedEvent) GetAggregateID() string   { return e.orderID }
func (e *PaymentConfirmedEvent) OrderID() string          { return e.orderID }
func (e *PaymentConfirmedEvent) PaymentReference() string { return e.paymentReference }
func (e *PaymentConfirmedEvent) Status() Status           { return e.status }

type StatusChangedEvent struct {
	orderID    string
	from       Status
	to         Status
	occurredOn time.Time
}

func NewStatusChangedEvent(orderID string, from, to Status) *StatusChangedEvent {
	return &StatusChangedEvent{
		orderID:    orderID,
		from:       from,
		to:         to,
		occurredOn: time.Now(),
	}
}

func (e *StatusChangedEvent) EventName() string      { return "order.status_changed" }
func (e *StatusChangedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *StatusChangedEvent) GetAggregateID() string { return e.orderID }
func (e *StatusChangedEvent) OrderID() string        { return e.orderID }
func (e *StatusChangedEvent) From() Status           { return e.from }
func (e *StatusChangedEvent) To() Status             { return e.to }

type OrderDeliveredEvent struct {
	orderID    string
	owner      OwnerRef
	occurredOn time.Time
}

func NewOrderDeliveredEvent(orderID string, owner OwnerRef) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		orderID:    orderID,
		owner:      owner,
		occurredOn: time.Now(),
	}
}

func (e *OrderDeliveredEvent) EventName() string      { return "order.delivered" }
func (e *OrderDeliveredEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderDeliveredEvent) GetAggregateID() string { return e.orderID }
func (e *OrderDeliveredEvent) OrderID() string        { return e.orderID }
func (e *OrderDeliveredEvent) Owner() OwnerRef        { return e.owner }

type OrderCancelledEvent struct {
	orderID    string
	owner      OwnerRef
	restocked  bool
	occurredOn time.Time
}

func NewOrderCancelledEvent(orderID string, owner OwnerRef, restocked bool) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		orderID:    orderID,
		owner:      owner,
		restocked:  restocked,
		occurredOn: time.Now(),
	}
}

func (e *OrderCancelledEvent) EventName() string      { return "order.cancelled" }
func (e *OrderCancelledEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderCancelledEvent) GetAggregateID() string { return e.orderID }
func (e *OrderCancelledEvent) OrderID() string        { return e.orderID }
func (e *OrderCancelledEvent) Owner() OwnerRef        { return e.owner }
func (e *OrderCancelledEvent) Restocked() bool        { return e.restocked }

type PointsAwardedEvent struct {
	orderID    string
	owner      OwnerRef
	points     int
	occurredOn time.Time
}

func NewPointsAwardedEvent(orderID string, owner OwnerRef, points int) *PointsAwardedEvent {
	return &PointsAwardedEvent{
		orderID:    orderID,
		owner:      owner,
		points:     points,
		occurredOn: time.Now(),
	}
}

func (e *PointsAwardedEvent) EventName() string      { return "order.points_awarded" }
func (e *PointsAwardedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *PointsAwardedEvent) GetAggregateID() string { return e.orderID }
func (e *PointsAwardedEvent) OrderID() string        { return e.orderID }
func (e *PointsAwardedEvent) Owner() OwnerRef        { return e.owner }
func (e *PointsAwardedEvent) Points() int            { return e.points }

// Payload implementations expose structured detail for the outbox and
// any other serializing consumer.

func (e *OrderPlacedEvent) Payload() map[string]any {
	return map[string]any{
		"owner":       e.owner.String(),
		"grand_total": e.grandTotal.Amount(),
		"currency":    e.grandTotal.Currency(),
	}
}

func (e *PaymentConfirmedEvent) Payload() map[string]any {
	return map[string]any{
		"payment_reference": e.paymentReference,
		"status":            string(e.status),
	}
}

func (e *StatusChangedEvent) Payload() map[string]any {
	return map[string]any{
		"from": string(e.from),
		"to":   string(e.to),
	}
}

func (e *OrderDeliveredEvent) Payload() map[string]any {
	return map[string]any{
		"owner": e.owner.String(),
	}
}

func (e *OrderCancelledEvent) Payload() map[string]any {
	return map[string]any{
		"owner":     e.owner.String(),
		"restocked": e.restocked,
	}
}

func (e *PointsAwardedEvent) Payload() map[string]any {
	return map[string]any{
		"owner":  e.owner.String(),
		"points": e.points,
	}
}
