package order

import (
	"context"
	"errors"
	"testing"

	"shopcore/domain/inventory"
	"shopcore/domain/shared"
)

// stubLedger is a fixed-stock ledger for assembler tests.
type stubLedger struct {
	stock map[string]int
}

func (l *stubLedger) Available(ctx context.Context, productRef string) (int, error) {
	available, ok := l.stock[productRef]
	if !ok {
		return 0, shared.NewNotFoundError("product")
	}
	return available, nil
}

func (l *stubLedger) TryDecrement(ctx context.Context, productRef string, quantity int) error {
	available, err := l.Available(ctx, productRef)
	if err != nil {
		return err
	}
	if available < quantity {
		return inventory.NewInsufficientStockError(productRef, quantity, available)
	}
	l.stock[productRef] -= quantity
	return nil
}

func (l *stubLedger) Increment(ctx context.Context, productRef string, quantity int) error {
	l.stock[productRef] += quantity
	return nil
}

func checkoutConfig() CheckoutConfig {
	return CheckoutConfig{
		Currency:   "THB",
		TaxRateBps: 700,
		ShippingFees: map[string]int64{
			"standard": 6000,
			"express":  12000,
		},
	}
}

func TestAssembleStandardOrder(t *testing.T) {
	// 2 x 100.00 THB with 7% tax and the standard 60.00 THB fee:
	// items 200.00, tax 14.00, shipping 60.00, grand 274.00.
	ledger := &stubLedger{stock: map[string]int{"prod-1": 10}}
	assembler := NewAssembler(ledger, checkoutConfig())

	snapshot := CartSnapshot{Lines: []CartLine{
		{ProductRef: "prod-1", ProductName: "Ceramic Mug", Quantity: 2, UnitPrice: 10000},
	}}

	o, err := assembler.Assemble(context.Background(), testOwner(t), snapshot,
		testAddress(), "credit_card", "standard", 0)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	amounts := o.Amounts()
	if got := amounts.ItemsTotal().Amount(); got != 20000 {
		t.Errorf("items total = %d, want 20000", got)
	}
	if got := amounts.Tax().Amount(); got != 1400 {
		t.Errorf("tax = %d, want 1400", got)
	}
	if got := amounts.ShippingFee().Amount(); got != 6000 {
		t.Errorf("shipping fee = %d, want 6000", got)
	}
	if got := amounts.GrandTotal().Amount(); got != 27400 {
		t.Errorf("grand total = %d, want 27400", got)
	}

	if o.Status() != StatusPendingPayment {
		t.Errorf("status = %s, want %s", o.Status(), StatusPendingPayment)
	}

	// Stock validation is read-only; nothing is reserved at checkout.
	if got := ledger.stock["prod-1"]; got != 10 {
		t.Errorf("stock after assemble = %d, want 10 (no reservation)", got)
	}

	items := o.Items()
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].NameSnapshot() != "Ceramic Mug" {
		t.Errorf("name snapshot = %q", items[0].NameSnapshot())
	}
	if items[0].UnitPrice().Amount() != 10000 {
		t.Errorf("unit price snapshot = %d, want 10000", items[0].UnitPrice().Amount())
	}
}

func TestAssembleExpressShipping(t *testing.T) {
	ledger := &stubLedger{stock: map[string]int{"prod-1": 5}}
	assembler := NewAssembler(ledger, checkoutConfig())

	snapshot := CartSnapshot{Lines: []CartLine{
		{ProductRef: "prod-1", ProductName: "Mug", Quantity: 1, UnitPrice: 10000},
	}}

	o, err := assembler.Assemble(context.Background(), testOwner(t), snapshot,
		testAddress(), "credit_card", "express", 0)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if got := o.Amounts().ShippingFee().Amount(); got != 12000 {
		t.Errorf("express fee = %d, want 12000", got)
	}
}

func TestAssembleEmptyCart(t *testing.T) {
	assembler := NewAssembler(&stubLedger{stock: map[string]int{}}, checkoutConfig())

	_, err := assembler.Assemble(context.Background(), testOwner(t), CartSnapshot{},
		testAddress(), "credit_card", "standard", 0)
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("got %v, want ErrEmptyCart", err)
	}
}

func TestAssembleInsufficientStock(t *testing.T) {
	ledger := &stubLedger{stock: map[string]int{"prod-1": 10, "prod-2": 1}}
	assembler := NewAssembler(ledger, checkoutConfig())

	snapshot := CartSnapshot{Lines: []CartLine{
		{ProductRef: "prod-1", ProductName: "Mug", Quantity: 2, UnitPrice: 10000},
		{ProductRef: "prod-2", ProductName: "Plate", Quantity: 3, UnitPrice: 5000},
	}}

	_, err := assembler.Assemble(context.Background(), testOwner(t), snapshot,
		testAddress(), "credit_card", "standard", 0)
	if !errors.Is(err, inventory.ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}

	var stockErr *inventory.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatal("error should carry the typed InsufficientStockError")
	}
	if stockErr.ProductRef != "prod-2" {
		t.Errorf("product ref = %q, want prod-2", stockErr.ProductRef)
	}
	if stockErr.Available != 1 {
		t.Errorf("available = %d, want 1", stockErr.Available)
	}
}

func TestAssembleUnknownShippingMethod(t *testing.T) {
	ledger := &stubLedger{stock: map[string]int{"prod-1": 10}}
	assembler := NewAssembler(ledger, checkoutConfig())

	snapshot := CartSnapshot{Lines: []CartLine{
		{ProductRef: "prod-1", ProductName: "Mug", Quantity: 1, UnitPrice: 10000},
	}}

	_, err := assembler.Assemble(context.Background(), testOwner(t), snapshot,
		testAddress(), "credit_card", "drone", 0)
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestAssembleOversizedDiscountRejected(t *testing.T) {
	ledger := &stubLedger{stock: map[string]int{"prod-1": 10}}
	assembler := NewAssembler(ledger, checkoutConfig())

	snapshot := CartSnapshot{Lines: []CartLine{
		{ProductRef: "prod-1", ProductName: "Mug", Quantity: 1, UnitPrice: 10000},
	}}

	// Discount exceeding the order total must be rejected, not produce a
	// negative grand total.
	_, err := assembler.Assemble(context.Background(), testOwner(t), snapshot,
		testAddress(), "credit_card", "standard", 1000000)
	if !errors.Is(err, ErrNegativeGrandTotal) {
		t.Errorf("got %v, want ErrNegativeGrandTotal", err)
	}
}
