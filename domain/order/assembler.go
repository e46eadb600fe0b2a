package order

import (
	"context"
	"fmt"

	"shopcore/domain/inventory"
	"shopcore/domain/shared"
)

// CheckoutConfig is the pricing configuration the assembler works from.
// It is loaded once at startup and passed in explicitly; there is no
// package-level settings singleton.
type CheckoutConfig struct {
	// Currency for all computed amounts, e.g. "THB".
	Currency string

	// TaxRateBps is the tax rate in basis points (700 = 7%), applied to
	// the items total and rounded half-up to the minor unit.
	TaxRateBps int64

	// ShippingFees maps a shipping method name to its flat fee in minor
	// units. A fixed lookup table, not a computed estimate.
	ShippingFees map[string]int64
}

// ShippingFee resolves the fee for a method.
func (c CheckoutConfig) ShippingFee(method string) (shared.Money, error) {
	fee, ok := c.ShippingFees[method]
	if !ok {
		return shared.Money{}, shared.NewValidationError("order", "shipping_method",
			fmt.Sprintf("unknown shipping method: %s", method))
	}
	return *shared.NewMoney(fee, c.Currency), nil
}

// Assembler builds an Order aggregate from a cart snapshot: it validates
// stock sufficiency (a read-only check, not a reservation), prices the
// order from the snapshot, and hands a PendingPayment order back.
//
// Stock is deliberately not decremented here - orders may sit unpaid
// indefinitely without locking inventory. The decrement happens at
// payment confirmation or on the first transition into a stock-bearing
// status.
type Assembler struct {
	ledger inventory.Ledger
	cfg    CheckoutConfig
}

// NewAssembler creates a checkout assembler.
func NewAssembler(ledger inventory.Ledger, cfg CheckoutConfig) *Assembler {
	return &Assembler{
		ledger: ledger,
		cfg:    cfg,
	}
}

// Assemble validates the snapshot and constructs the order.
//
// All-or-nothing: if any line exceeds currently available stock the whole
// assembly fails with inventory.InsufficientStockError and no order
// exists. Infrastructure errors from the ledger abort the assembly
// unchanged.
func (a *Assembler) Assemble(ctx context.Context, owner OwnerRef, snapshot CartSnapshot,
	address ShippingAddress, paymentMethod, shippingMethod string, discount int64) (*Order, error) {

	if snapshot.IsEmpty() {
		return nil, NewEmptyCartError()
	}

	lines := make([]LineSpec, len(snapshot.Lines))
	itemsTotal := shared.NewMoney(0, a.cfg.Currency)
	for i, cartLine := range snapshot.Lines {
		if cartLine.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		available, err := a.ledger.Available(ctx, cartLine.ProductRef)
		if err != nil {
			return nil, err
		}
		if cartLine.Quantity > available {
			return nil, inventory.NewInsufficientStockError(cartLine.ProductRef, cartLine.Quantity, available)
		}

		unitPrice := shared.NewMoney(cartLine.UnitPrice, a.cfg.Currency)
		lines[i] = LineSpec{
			ProductRef:   cartLine.ProductRef,
			NameSnapshot: cartLine.ProductName,
			UnitPrice:    *unitPrice,
			Quantity:     cartLine.Quantity,
		}

		subtotal, err := unitPrice.Multiply(cartLine.Quantity)
		if err != nil {
			return nil, err
		}
		itemsTotal, err = itemsTotal.Add(*subtotal)
		if err != nil {
			return nil, err
		}
	}

	shippingFee, err := a.cfg.ShippingFee(shippingMethod)
	if err != nil {
		return nil, err
	}

	tax := itemsTotal.PercentRoundHalfUp(a.cfg.TaxRateBps)

	return NewOrder(owner, lines, address, paymentMethod, shippingMethod,
		*tax, shippingFee, *shared.NewMoney(discount, a.cfg.Currency))
}
