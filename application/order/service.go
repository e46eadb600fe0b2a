/*
Package order - application layer, order lifecycle orchestration.

Responsibilities:
 1. Receive requests from controllers, translate DTOs to domain calls.
 2. Run each operation inside a unit of work; repositories pick the
    transaction up from the context.
 3. Coordinate the inventory ledger around status changes so the stock
    effect of an order is applied at most once and released at most once.
 4. Dispatch fire-and-forget notifications after commit; their failure is
    logged and never rolls back the primary state change.

The unit of work retries on concurrent-modification errors, and the
aggregate's guards (already paid, stock already applied) make those
retries safe.
*/
package order

import (
	"context"
	"errors"

	"shopcore/domain/inventory"
	"shopcore/domain/order"
	"shopcore/domain/shared"
	"shopcore/pkg/logger"

	"go.uber.org/zap"
)

// ApplicationService coordinates checkout and the order lifecycle.
//
// Units of work are created per operation from the factory; concurrent
// requests never share one, so each transaction only ever sees its own
// registered aggregates and events.
type ApplicationService struct {
	orderRepo  order.Repository
	ledger     inventory.Ledger
	assembler  *order.Assembler
	carts      CartSource
	notifier   Notifier
	loyalty    LoyaltyLedger
	uowFactory shared.UnitOfWorkFactory
}

// NewApplicationService creates the order application service.
func NewApplicationService(
	orderRepo order.Repository,
	ledger inventory.Ledger,
	cfg order.CheckoutConfig,
	carts CartSource,
	notifier Notifier,
	loyalty LoyaltyLedger,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:  orderRepo,
		ledger:     ledger,
		assembler:  order.NewAssembler(ledger, cfg),
		carts:      carts,
		notifier:   notifier,
		loyalty:    loyalty,
		uowFactory: uowFactory,
	}
}

// ============================================================================
// Checkout
// ============================================================================

// Checkout reads the owner's cart snapshot, assembles an order and
// persists it. Stock is validated but not reserved. The cart is cleared
// after the order is committed; a failed clear is a UX inconvenience,
// not a data-integrity problem, so it is logged and swallowed.
func (s *ApplicationService) Checkout(ctx context.Context, req CheckoutRequest) (*OrderResponse, error) {
	owner, err := req.ownerRef()
	if err != nil {
		return nil, err
	}

	var o *order.Order
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		snapshot, err := s.carts.ReadSnapshot(ctx, owner)
		if err != nil {
			return err
		}

		o, err = s.assembler.Assemble(ctx, owner, snapshot,
			req.Address.toDomain(), req.PaymentMethod, req.ShippingMethod, req.Discount)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, owner); err != nil {
		logger.Warn("failed to clear cart after checkout",
			zap.String("order_id", o.ID()),
			zap.String("owner", owner.String()),
			zap.Error(err))
	}

	s.dispatchNotification(owner, EventOrderConfirmed, map[string]any{
		"order_id":    o.ID(),
		"grand_total": o.Amounts().GrandTotal().Amount(),
		"currency":    o.Amounts().GrandTotal().Currency(),
	})

	return toResponse(o), nil
}

// ============================================================================
// Payment confirmation
// ============================================================================

// ConfirmPayment marks an order as paid, decrementing stock exactly once
// across the order's lifetime. A duplicate call fails with ErrAlreadyPaid
// before inventory is touched, which is what makes at-least-once webhook
// delivery safe.
func (s *ApplicationService) ConfirmPayment(ctx context.Context, orderID, paymentReference string) (*OrderResponse, error) {
	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if o.IsPaid() {
			return order.NewAlreadyPaidError(o.ID())
		}

		if !o.StockApplied() {
			if err := s.decrementOrderStock(ctx, o); err != nil {
				return err
			}
		}

		if err := o.ConfirmPayment(paymentReference); err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchNotification(o.Owner(), EventStatusChanged, map[string]any{
		"order_id": o.ID(),
		"status":   string(o.Status()),
		"paid":     true,
	})

	return toResponse(o), nil
}

// ============================================================================
// Status transitions
// ============================================================================

// UpdateStatus moves an order along the lifecycle.
//
// Entering Processing or Shipped applies the stock decrement first when
// it is still outstanding; Cancelled releases it exactly once when it
// was applied; Delivered awards loyalty points once per order. All of it
// happens in one unit of work, so an aborted transition leaves no stock
// effect behind.
func (s *ApplicationService) UpdateStatus(ctx context.Context, orderID string, req UpdateStatusRequest) (*OrderResponse, error) {
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var o *order.Order
	var awarded bool
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		awarded = false
		var err error
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		// Reject illegal moves before any inventory side effect.
		if !o.Status().CanTransitionTo(target) {
			return order.NewIllegalTransitionError(o.Status(), target)
		}

		if target.RequiresStockDecrement() && !o.StockApplied() {
			if err := s.decrementOrderStock(ctx, o); err != nil {
				return err
			}
		}

		if target == order.StatusCancelled && o.StockApplied() {
			if err := s.restockOrder(ctx, o); err != nil {
				return err
			}
		}

		if target == order.StatusShipped && req.TrackingNumber != "" {
			o.SetTracking(req.TrackingNumber, req.Carrier)
		}

		if err := o.TransitionTo(target); err != nil {
			return err
		}

		if target == order.StatusDelivered && !o.PointsAwarded() {
			if err := o.MarkPointsAwarded(); err != nil {
				return err
			}
			awarded = true
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if awarded {
		s.accruePoints(o)
	}

	s.dispatchNotification(o.Owner(), EventStatusChanged, map[string]any{
		"order_id": o.ID(),
		"status":   string(o.Status()),
	})

	return toResponse(o), nil
}

// ============================================================================
// Queries
// ============================================================================

// GetOrder loads one order.
func (s *ApplicationService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return toResponse(o), nil
}

// GetOwnerOrders lists the orders of a customer or guest session.
func (s *ApplicationService) GetOwnerOrders(ctx context.Context, owner order.OwnerRef) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toResponse(o)
	}

	return responses, nil
}

// ============================================================================
// Inventory coordination
// ============================================================================

// decrementOrderStock applies the order's full stock effect or none of
// it, then records the effect on the aggregate.
func (s *ApplicationService) decrementOrderStock(ctx context.Context, o *order.Order) error {
	if err := inventory.DecrementAll(ctx, s.ledger, toAdjustments(o)); err != nil {
		return err
	}
	return o.ApplyStockDecrement()
}

// restockOrder gives the outstanding decrement back on cancellation.
func (s *ApplicationService) restockOrder(ctx context.Context, o *order.Order) error {
	if err := inventory.IncrementAll(ctx, s.ledger, toAdjustments(o)); err != nil {
		return err
	}
	return o.ReleaseStockDecrement()
}

func toAdjustments(o *order.Order) []inventory.Adjustment {
	stockAdjs := o.StockAdjustments()
	adjs := make([]inventory.Adjustment, len(stockAdjs))
	for i, adj := range stockAdjs {
		adjs[i] = inventory.Adjustment{ProductRef: adj.ProductRef, Quantity: adj.Quantity}
	}
	return adjs
}

// ============================================================================
// Side effects
// ============================================================================

// accruePoints adds the loyalty accrual outside the transaction. The
// aggregate's pointsAwarded flag was persisted with the transition, so a
// retried delivery call cannot double-accrue; a failed ledger call is
// logged and not propagated.
func (s *ApplicationService) accruePoints(o *order.Order) {
	points := o.LoyaltyPoints()
	if points <= 0 {
		return
	}

	owner := o.Owner()
	go func() {
		ctx := context.Background()
		if err := s.loyalty.AddPoints(ctx, owner, points); err != nil {
			logger.Error("loyalty accrual failed",
				zap.String("order_id", o.ID()),
				zap.String("owner", owner.String()),
				zap.Int("points", points),
				zap.Error(err))
			return
		}

		s.dispatchNotification(owner, EventPointsAwarded, map[string]any{
			"order_id": o.ID(),
			"points":   points,
		})
	}()
}

// dispatchNotification sends without blocking the caller and swallows
// failures. Payment and stock correctness never depend on the
// notification channel being up.
func (s *ApplicationService) dispatchNotification(owner order.OwnerRef, kind EventKind, payload map[string]any) {
	go func() {
		ctx := context.Background()
		if err := s.notifier.Notify(ctx, owner, kind, payload); err != nil {
			logger.Warn("notification delivery failed",
				zap.String("owner", owner.String()),
				zap.String("event", string(kind)),
				zap.Error(err))
		}
	}()
}

// IsBusinessError reports whether err is an expected business outcome
// rather than an infrastructure failure. Controllers use it to pick the
// response shape.
func IsBusinessError(err error) bool {
	return errors.Is(err, order.ErrAlreadyPaid) ||
		errors.Is(err, order.ErrIllegalTransition) ||
		errors.Is(err, order.ErrEmptyCart) ||
		errors.Is(err, inventory.ErrInsufficientStock)
}
