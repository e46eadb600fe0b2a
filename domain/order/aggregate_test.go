package order

import (
	"errors"
	"testing"

	"shopcore/domain/shared"
)

func thb(amount int64) shared.Money {
	return *shared.NewMoney(amount, "THB")
}

func testAddress() ShippingAddress {
	return ShippingAddress{
		Recipient:  "Somchai J.",
		Line1:      "99 Sukhumvit Rd",
		City:       "Bangkok",
		PostalCode: "10110",
	}
}

func testOwner(t *testing.T) OwnerRef {
	t.Helper()
	owner, err := NewCustomerRef("cust-1")
	if err != nil {
		t.Fatalf("NewCustomerRef failed: %v", err)
	}
	return owner
}

// newTestOrder builds a two-unit order: 2 x 100.00 THB items, 7% tax,
// 60.00 THB shipping, no discount. Grand total 274.00 THB.
func newTestOrder(t *testing.T) *Order {
	t.Helper()
	lines := []LineSpec{
		{ProductRef: "prod-1", NameSnapshot: "Ceramic Mug", UnitPrice: thb(10000), Quantity: 2},
	}
	o, err := NewOrder(testOwner(t), lines, testAddress(), "credit_card", "standard",
		thb(1400), thb(6000), thb(0))
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	return o
}

func TestNewOrderAmounts(t *testing.T) {
	o := newTestOrder(t)

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
	if o.StockApplied() {
		t.Error("new order must not have a stock effect applied")
	}
	if o.IsPaid() {
		t.Error("new order must not be paid")
	}
}

func TestNewOrderValidation(t *testing.T) {
	owner := testOwner(t)
	line := LineSpec{ProductRef: "prod-1", NameSnapshot: "Mug", UnitPrice: thb(10000), Quantity: 1}

	_, err := NewOrder(OwnerRef{}, []LineSpec{line}, testAddress(), "credit_card", "standard",
		thb(0), thb(0), thb(0))
	if !errors.Is(err, ErrInvalidOwner) {
		t.Errorf("zero owner: got %v, want ErrInvalidOwner", err)
	}

	_, err = NewOrder(owner, nil, testAddress(), "credit_card", "standard",
		thb(0), thb(0), thb(0))
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("no lines: got %v, want ErrEmptyCart", err)
	}

	bad := line
	bad.Quantity = 0
	_, err = NewOrder(owner, []LineSpec{bad}, testAddress(), "credit_card", "standard",
		thb(0), thb(0), thb(0))
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity: got %v, want ErrInvalidQuantity", err)
	}

	// Discount larger than everything else drives the grand total negative.
	_, err = NewOrder(owner, []LineSpec{line}, testAddress(), "credit_card", "standard",
		thb(0), thb(0), thb(99999))
	if !errors.Is(err, ErrNegativeGrandTotal) {
		t.Errorf("oversized discount: got %v, want ErrNegativeGrandTotal", err)
	}
}

func TestConfirmPaymentOnce(t *testing.T) {
	o := newTestOrder(t)

	if err := o.ConfirmPayment("pay-123"); err != nil {
		t.Fatalf("first ConfirmPayment failed: %v", err)
	}
	if !o.IsPaid() {
		t.Error("order should be paid")
	}
	if o.PaymentReference() != "pay-123" {
		t.Errorf("payment reference = %q, want pay-123", o.PaymentReference())
	}
	if o.Status() != StatusProcessing {
		t.Errorf("status after payment = %s, want %s", o.Status(), StatusProcessing)
	}

	err := o.ConfirmPayment("pay-456")
	if !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("second ConfirmPayment: got %v, want ErrAlreadyPaid", err)
	}
	if o.PaymentReference() != "pay-123" {
		t.Error("duplicate confirmation must not overwrite the reference")
	}
}

func TestConfirmPaymentDoesNotMoveStatusBackward(t *testing.T) {
	o := newTestOrder(t)

	if err := o.TransitionTo(StatusShipped); err != nil {
		t.Fatalf("TransitionTo(Shipped) failed: %v", err)
	}
	if err := o.ConfirmPayment("pay-late"); err != nil {
		t.Fatalf("ConfirmPayment failed: %v", err)
	}
	if o.Status() != StatusShipped {
		t.Errorf("status = %s, want %s (payment must not rewind status)", o.Status(), StatusShipped)
	}
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPendingPayment, StatusProcessing, true},
		{StatusPendingPayment, StatusShipped, true},
		{StatusPendingPayment, StatusCancelled, true},
		{StatusPendingPayment, StatusDelivered, false},
		{StatusPendingPayment, StatusRefunded, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusDelivered, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusShipped, StatusProcessing, false},
		{StatusDelivered, StatusShipped, false},
		{StatusDelivered, StatusRefunded, false},
		{StatusCancelled, StatusProcessing, false},
		{StatusRefunded, StatusProcessing, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		if got != tc.allowed {
			t.Errorf("%s -> %s: allowed = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestTransitionToRejectsIllegalMove(t *testing.T) {
	o := newTestOrder(t)

	err := o.TransitionTo(StatusDelivered)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("got %v, want ErrIllegalTransition", err)
	}

	var te *IllegalTransitionError
	if !errors.As(err, &te) {
		t.Fatal("error should carry the typed IllegalTransitionError")
	}
	if te.From != StatusPendingPayment || te.To != StatusDelivered {
		t.Errorf("transition error = %s -> %s, want %s -> %s",
			te.From, te.To, StatusPendingPayment, StatusDelivered)
	}

	if o.Status() != StatusPendingPayment {
		t.Error("failed transition must leave status untouched")
	}
}

func TestTransitionToUnknownStatus(t *testing.T) {
	o := newTestOrder(t)
	if err := o.TransitionTo(Status("LOST_IN_TRANSIT")); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("got %v, want ErrUnknownStatus", err)
	}
}

func TestDeliveredSetsTimestamp(t *testing.T) {
	o := newTestOrder(t)

	if err := o.TransitionTo(StatusShipped); err != nil {
		t.Fatalf("TransitionTo(Shipped) failed: %v", err)
	}
	if o.DeliveredAt() != nil {
		t.Error("deliveredAt must be unset before delivery")
	}

	if err := o.TransitionTo(StatusDelivered); err != nil {
		t.Fatalf("TransitionTo(Delivered) failed: %v", err)
	}
	if o.DeliveredAt() == nil {
		t.Error("deliveredAt must be set on delivery")
	}
	if !o.IsDelivered() {
		t.Error("IsDelivered must derive from status")
	}
}

func TestStockBookkeeping(t *testing.T) {
	o := newTestOrder(t)

	if err := o.ApplyStockDecrement(); err != nil {
		t.Fatalf("first ApplyStockDecrement failed: %v", err)
	}
	if !o.StockApplied() {
		t.Error("stockApplied should be set")
	}

	if err := o.ApplyStockDecrement(); !errors.Is(err, ErrStockAlreadyApplied) {
		t.Errorf("second apply: got %v, want ErrStockAlreadyApplied", err)
	}

	if err := o.ReleaseStockDecrement(); err != nil {
		t.Fatalf("ReleaseStockDecrement failed: %v", err)
	}
	if o.StockApplied() {
		t.Error("stockApplied should be cleared")
	}

	if err := o.ReleaseStockDecrement(); !errors.Is(err, ErrStockNotApplied) {
		t.Errorf("second release: got %v, want ErrStockNotApplied", err)
	}
}

func TestStockAdjustments(t *testing.T) {
	lines := []LineSpec{
		{ProductRef: "prod-1", NameSnapshot: "Mug", UnitPrice: thb(10000), Quantity: 2},
		{ProductRef: "prod-2", NameSnapshot: "Plate", UnitPrice: thb(5000), Quantity: 3},
	}
	o, err := NewOrder(testOwner(t), lines, testAddress(), "credit_card", "standard",
		thb(0), thb(0), thb(0))
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}

	adjs := o.StockAdjustments()
	if len(adjs) != 2 {
		t.Fatalf("got %d adjustments, want 2", len(adjs))
	}
	if adjs[0].ProductRef != "prod-1" || adjs[0].Quantity != 2 {
		t.Errorf("adjustment[0] = %+v", adjs[0])
	}
	if adjs[1].ProductRef != "prod-2" || adjs[1].Quantity != 3 {
		t.Errorf("adjustment[1] = %+v", adjs[1])
	}
}

func TestLoyaltyPoints(t *testing.T) {
	// Grand total 274.00 THB -> floor(274/100) = 2 points.
	o := newTestOrder(t)
	if got := o.LoyaltyPoints(); got != 2 {
		t.Errorf("LoyaltyPoints = %d, want 2", got)
	}

	if err := o.MarkPointsAwarded(); err != nil {
		t.Fatalf("MarkPointsAwarded failed: %v", err)
	}
	if err := o.MarkPointsAwarded(); !errors.Is(err, ErrPointsAlreadyAwarded) {
		t.Errorf("second award: got %v, want ErrPointsAlreadyAwarded", err)
	}
}

func TestCancelledEventCarriesRestockFlag(t *testing.T) {
	o := newTestOrder(t)
	o.PullEvents() // drop the placement event

	if err := o.ApplyStockDecrement(); err != nil {
		t.Fatalf("ApplyStockDecrement failed: %v", err)
	}
	if err := o.TransitionTo(StatusCancelled); err != nil {
		t.Fatalf("TransitionTo(Cancelled) failed: %v", err)
	}

	events := o.PullEvents()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	cancelled, ok := events[0].(*OrderCancelledEvent)
	if !ok {
		t.Fatalf("event = %T, want *OrderCancelledEvent", events[0])
	}
	if !cancelled.Restocked() {
		t.Error("cancellation after stock decrement must report restocked")
	}
}

func TestPullEventsClears(t *testing.T) {
	o := newTestOrder(t)

	first := o.PullEvents()
	if len(first) != 1 {
		t.Fatalf("got %d events after creation, want 1", len(first))
	}
	if first[0].EventName() != "order.placed" {
		t.Errorf("event name = %q, want order.placed", first[0].EventName())
	}

	if again := o.PullEvents(); len(again) != 0 {
		t.Errorf("got %d events on second pull, want 0", len(again))
	}
}

func TestReconstructionRoundTrip(t *testing.T) {
	o := newTestOrder(t)
	if err := o.ConfirmPayment("pay-1"); err != nil {
		t.Fatalf("ConfirmPayment failed: %v", err)
	}
	if err := o.ApplyStockDecrement(); err != nil {
		t.Fatalf("ApplyStockDecrement failed: %v", err)
	}

	rebuilt := RebuildFromDTO(ReconstructionDTO{
		ID:               o.ID(),
		Owner:            o.Owner(),
		Items:            o.Items(),
		Amounts:          o.Amounts(),
		Address:          o.Address(),
		PaymentMethod:    o.PaymentMethod(),
		ShippingMethod:   o.ShippingMethod(),
		Status:           o.Status(),
		PaidAt:           o.PaidAt(),
		PaymentReference: o.PaymentReference(),
		StockApplied:     o.StockApplied(),
		Version:          3,
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	})

	if rebuilt.IsNew() {
		t.Error("rebuilt aggregate must not be marked new")
	}
	if rebuilt.Version() != 3 {
		t.Errorf("version = %d, want 3", rebuilt.Version())
	}
	if !rebuilt.IsPaid() || !rebuilt.StockApplied() {
		t.Error("rebuilt aggregate lost lifecycle state")
	}
	if rebuilt.Status() != StatusProcessing {
		t.Errorf("status = %s, want %s", rebuilt.Status(), StatusProcessing)
	}
	if len(rebuilt.PullEvents()) != 0 {
		t.Error("reconstruction must not produce events")
	}
}
