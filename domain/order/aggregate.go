/*
Package order - order subdomain, the core consistency boundary.

The Order aggregate root owns its line items, derived amounts and
lifecycle state. All mutation goes through aggregate methods; external
code cannot put an order into a state the transition table forbids.

Lifecycle flags are collapsed into the status enum plus one auxiliary
bool (stockApplied): "is paid" derives from paidAt, "is delivered" from
status, which removes the possibility of a delivered order that claims
not to be delivered.
*/
package order

import (
	"fmt"
	"time"

	"shopcore/domain/shared"

	"github.com/google/uuid"
)

// Order aggregate root.
//
// Stock bookkeeping invariant: stockApplied is true exactly while a
// decrement is outstanding against inventory. It flips to true at most
// once (first payment confirmation or first transition into a status
// that requires stock) and back to false at most once (restock on
// cancellation). Cancelled and Delivered are terminal, so neither flip
// can repeat.
type Order struct {
	id             string
	owner          OwnerRef
	items          []LineItem
	amounts        Amounts
	address        ShippingAddress
	paymentMethod  string
	shippingMethod string
	status         Status

	paidAt           *time.Time
	paymentReference string

	deliveredAt    *time.Time
	trackingNumber string
	carrier        string

	stockApplied  bool
	pointsAwarded bool

	version   int // optimistic lock version, bumped by the repository after save
	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
	isNew  bool
}

// LineItem is an entity inside the aggregate. Name and unit price are
// snapshots taken at order time and stay fixed when the catalog changes.
type LineItem struct {
	id           string
	productRef   string
	nameSnapshot string
	unitPrice    shared.Money
	quantity     int
	subtotal     shared.Money
}

// ShippingAddress value object.
type ShippingAddress struct {
	Recipient  string
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Phone      string
}

// LineSpec is the input for one order line.
type LineSpec struct {
	ProductRef   string
	NameSnapshot string
	UnitPrice    shared.Money
	Quantity     int
}

// satangPerPoint: one loyalty point per 100 THB of grand total,
// amounts being stored in satang (1 THB = 100 satang).
const satangPerPoint = 100 * 100

// ============================================================================
// Factory
// ============================================================================

// NewOrder creates an order in PendingPayment with no stock effect
// applied. The assembler is the expected caller; it supplies snapshot
// prices and the computed tax/shipping/discount parts. The grand total is
// derived here and never accepted from outside.
func NewOrder(owner OwnerRef, lines []LineSpec, address ShippingAddress,
	paymentMethod, shippingMethod string, tax, shippingFee, discount shared.Money) (*Order, error) {

	if owner.IsZero() {
		return nil, ErrInvalidOwner
	}
	if len(lines) == 0 {
		return nil, NewEmptyCartError()
	}

	items := make([]LineItem, len(lines))
	itemsTotal := shared.NewMoney(0, tax.Currency())
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		subtotal, err := line.UnitPrice.Multiply(line.Quantity)
		if err != nil {
			return nil, err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate line item ID: %w", err)
		}

		items[i] = LineItem{
			id:           id.String(),
			productRef:   line.ProductRef,
			nameSnapshot: line.NameSnapshot,
			unitPrice:    line.UnitPrice,
			quantity:     line.Quantity,
			subtotal:     *subtotal,
		}

		itemsTotal, err = itemsTotal.Add(*subtotal)
		if err != nil {
			return nil, err
		}
	}

	amounts, err := NewAmounts(*itemsTotal, tax, shippingFee, discount)
	if err != nil {
		return nil, err
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:             orderID.String(),
		owner:          owner,
		items:          items,
		amounts:        *amounts,
		address:        address,
		paymentMethod:  paymentMethod,
		shippingMethod: shippingMethod,
		status:         StatusPendingPayment,
		stockApplied:   false,
		version:        0,
		createdAt:      now,
		updatedAt:      now,
		events:         make([]shared.DomainEvent, 0),
		isNew:          true,
	}

	o.events = append(o.events, NewOrderPlacedEvent(o.id, owner, amounts.GrandTotal()))

	return o, nil
}

// ============================================================================
// Reconstruction - repository layer use only
// ============================================================================

// ReconstructionDTO rebuilds an Order from storage while keeping the
// aggregate's fields private. Must not be used outside repositories.
type ReconstructionDTO struct {
	ID               string
	Owner            OwnerRef
	Items            []LineItem
	Amounts          Amounts
	Address          ShippingAddress
	PaymentMethod    string
	ShippingMethod   string
	Status           Status
	PaidAt           *time.Time
	PaymentReference string
	DeliveredAt      *time.Time
	TrackingNumber   string
	Carrier          string
	StockApplied     bool
	PointsAwarded    bool
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RebuildFromDTO reconstructs the aggregate root from a DTO.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:               dto.ID,
		owner:            dto.Owner,
		items:            dto.Items,
		amounts:          dto.Amounts,
		address:          dto.Address,
		paymentMethod:    dto.PaymentMethod,
		shippingMethod:   dto.ShippingMethod,
		status:           dto.Status,
		paidAt:           dto.PaidAt,
		paymentReference: dto.PaymentReference,
		deliveredAt:      dto.DeliveredAt,
		trackingNumber:   dto.TrackingNumber,
		carrier:          dto.Carrier,
		stockApplied:     dto.StockApplied,
		pointsAwarded:    dto.PointsAwarded,
		version:          dto.Version,
		createdAt:        dto.CreatedAt,
		updatedAt:        dto.UpdatedAt,
		events:           nil,
		isNew:            false,
	}
}

// ItemReconstructionDTO rebuilds a LineItem from storage.
type ItemReconstructionDTO struct {
	ID           string
	ProductRef   string
	NameSnapshot string
	UnitPrice    shared.Money
	Quantity     int
	Subtotal     shared.Money
}

// RebuildItemFromDTO reconstructs a line item.
func RebuildItemFromDTO(dto ItemReconstructionDTO) LineItem {
	return LineItem{
		id:           dto.ID,
		productRef:   dto.ProductRef,
		nameSnapshot: dto.NameSnapshot,
		unitPrice:    dto.UnitPrice,
		quantity:     dto.Quantity,
		subtotal:     dto.Subtotal,
	}
}

// ============================================================================
// Payment
// ============================================================================

// ConfirmPayment marks the order as paid exactly once. A second call
// returns ErrAlreadyPaid; duplicate payment webhooks must not cause a
// second stock decrement, and the caller checks this guard before
// touching inventory.
//
// Payment never moves status backward: only PendingPayment is bumped to
// Processing, a later status stays as it is.
func (o *Order) ConfirmPayment(paymentReference string) error {
	if o.IsPaid() {
		return NewAlreadyPaidError(o.id)
	}

	now := time.Now()
	o.paidAt = &now
	o.paymentReference = paymentReference
	if o.status == StatusPendingPayment {
		o.status = StatusProcessing
	}
	o.updatedAt = now

	o.events = append(o.events, NewPaymentConfirmedEvent(o.id, paymentReference, o.status))

	return nil
}

// ============================================================================
// Status transitions
// ============================================================================

// TransitionTo moves the order along the transition table. Illegal moves
// fail with a typed error and leave the aggregate untouched. Side effects
// that belong to the transition (stock decrement, restock, loyalty
// accrual) are orchestrated by the application service, which consults
// StockApplied() before calling this.
func (o *Order) TransitionTo(target Status) error {
	if _, ok := allowedTransitions[target]; !ok {
		return NewUnknownStatusError(string(target))
	}
	if !o.status.CanTransitionTo(target) {
		return NewIllegalTransitionError(o.status, target)
	}

	from := o.status
	now := time.Now()
	o.status = target
	o.updatedAt = now

	switch target {
	case StatusDelivered:
		o.deliveredAt = &now
		o.events = append(o.events, NewOrderDeliveredEvent(o.id, o.owner))
	case StatusCancelled:
		o.events = append(o.events, NewOrderCancelledEvent(o.id, o.owner, o.stockApplied))
	default:
		o.events = append(o.events, NewStatusChangedEvent(o.id, from, target))
	}

	return nil
}

// SetTracking records shipment metadata. Meaningful once the order is on
// its way to Shipped; kept permissive because carriers assign numbers at
// different points of the handover.
func (o *Order) SetTracking(trackingNumber, carrier string) {
	o.trackingNumber = trackingNumber
	o.carrier = carrier
	o.updatedAt = time.Now()
}

// ============================================================================
// Stock bookkeeping
// ============================================================================

// ApplyStockDecrement records that inventory was decremented for this
// order. At most once per order lifetime.
func (o *Order) ApplyStockDecrement() error {
	if o.stockApplied {
		return ErrStockAlreadyApplied
	}
	o.stockApplied = true
	o.updatedAt = time.Now()
	return nil
}

// ReleaseStockDecrement records that the outstanding decrement was given
// back to inventory. Only valid while a decrement is outstanding.
func (o *Order) ReleaseStockDecrement() error {
	if !o.stockApplied {
		return ErrStockNotApplied
	}
	o.stockApplied = false
	o.updatedAt = time.Now()
	return nil
}

// StockAdjustments returns the per-product quantities of this order in
// line order, for handing to the inventory ledger.
func (o *Order) StockAdjustments() []StockAdjustment {
	adjs := make([]StockAdjustment, len(o.items))
	for i, item := range o.items {
		adjs[i] = StockAdjustment{ProductRef: item.productRef, Quantity: item.quantity}
	}
	return adjs
}

// StockAdjustment is one product/quantity pair of the order's stock effect.
type StockAdjustment struct {
	ProductRef string
	Quantity   int
}

// ============================================================================
// Loyalty
// ============================================================================

// LoyaltyPoints computes the accrual for this order: one point per full
// 100 THB of grand total.
func (o *Order) LoyaltyPoints() int {
	return int(o.amounts.GrandTotal().Amount() / satangPerPoint)
}

// MarkPointsAwarded records loyalty accrual exactly once per order.
func (o *Order) MarkPointsAwarded() error {
	if o.pointsAwarded {
		return ErrPointsAlreadyAwarded
	}
	o.pointsAwarded = true
	o.updatedAt = time.Now()

	o.events = append(o.events, NewPointsAwardedEvent(o.id, o.owner, o.LoyaltyPoints()))

	return nil
}

// ============================================================================
// Getters
// ============================================================================

func (o *Order) ID() string       { return o.id }
func (o *Order) Owner() OwnerRef  { return o.owner }
func (o *Order) Amounts() Amounts { return o.amounts }
func (o *Order) Status() Status   { return o.status }

// Items returns a copy; aggregate internals are not handed out mutable.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Address() ShippingAddress { return o.address }
func (o *Order) PaymentMethod() string    { return o.paymentMethod }
func (o *Order) ShippingMethod() string   { return o.shippingMethod }

// IsPaid derives from paidAt rather than a stored flag.
func (o *Order) IsPaid() bool { return o.paidAt != nil }

func (o *Order) PaidAt() *time.Time       { return o.paidAt }
func (o *Order) PaymentReference() string { return o.paymentReference }

// IsDelivered derives from status rather than a stored flag.
func (o *Order) IsDelivered() bool { return o.status == StatusDelivered }

func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }
func (o *Order) TrackingNumber() string  { return o.trackingNumber }
func (o *Order) Carrier() string         { return o.carrier }

func (o *Order) StockApplied() bool  { return o.stockApplied }
func (o *Order) PointsAwarded() bool { return o.pointsAwarded }

func (o *Order) Version() int         { return o.version }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// IsNew reports whether the aggregate was created in this session rather
// than loaded from storage. Repositories use it to pick INSERT vs UPDATE.
func (o *Order) IsNew() bool { return o.isNew }

// IncrementVersionForSave bumps the optimistic-lock version after a
// successful save. Called by the repository only.
func (o *Order) IncrementVersionForSave() {
	o.version++
	o.isNew = false
}

// PullEvents returns and clears the recorded domain events. The unit of
// work calls this inside the transaction so each event reaches the
// outbox table exactly once.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(o.events))
	copy(events, o.events)
	o.events = make([]shared.DomainEvent, 0)
	return events
}

// LineItem getters - read-only access.

func (item LineItem) ID() string              { return item.id }
func (item LineItem) ProductRef() string      { return item.productRef }
func (item LineItem) NameSnapshot() string    { return item.nameSnapshot }
func (item LineItem) UnitPrice() shared.Money { return item.unitPrice }
func (item LineItem) Quantity() int           { return item.quantity }
func (item LineItem) Subtotal() shared.Money  { return item.subtotal }

// Compile-time check that Order implements AggregateRoot.
var _ shared.AggregateRoot = (*Order)(nil)
