package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type memLedger struct {
	mu    sync.Mutex
	stock map[string]int
}

func newMemLedger(stock map[string]int) *memLedger {
	return &memLedger{stock: stock}
}

func (l *memLedger) Available(ctx context.Context, productRef string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stock[productRef], nil
}

func (l *memLedger) TryDecrement(ctx context.Context, productRef string, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	available := l.stock[productRef]
	if available < qty {
		return NewInsufficientStockError(productRef, qty, available)
	}
	l.stock[productRef] = available - qty
	return nil
}

func (l *memLedger) Increment(ctx context.Context, productRef string, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stock[productRef] += qty
	return nil
}

func TestDecrementAllApplied(t *testing.T) {
	ledger := newMemLedger(map[string]int{"a": 5, "b": 3})

	err := DecrementAll(context.Background(), ledger, []Adjustment{
		{ProductRef: "a", Quantity: 2},
		{ProductRef: "b", Quantity: 3},
	})
	if err != nil {
		t.Fatalf("DecrementAll failed: %v", err)
	}

	if ledger.stock["a"] != 3 || ledger.stock["b"] != 0 {
		t.Errorf("stock = %v, want a=3 b=0", ledger.stock)
	}
}

func TestDecrementAllCompensatesOnFailure(t *testing.T) {
	ledger := newMemLedger(map[string]int{"a": 5, "b": 1, "c": 9})

	err := DecrementAll(context.Background(), ledger, []Adjustment{
		{ProductRef: "a", Quantity: 2},
		{ProductRef: "b", Quantity: 4}, // fails, only 1 available
		{ProductRef: "c", Quantity: 1},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}

	// The already-applied decrement of "a" must have been given back and
	// "c" never touched.
	if ledger.stock["a"] != 5 {
		t.Errorf("stock[a] = %d, want 5 (compensated)", ledger.stock["a"])
	}
	if ledger.stock["b"] != 1 {
		t.Errorf("stock[b] = %d, want 1 (untouched)", ledger.stock["b"])
	}
	if ledger.stock["c"] != 9 {
		t.Errorf("stock[c] = %d, want 9 (never reached)", ledger.stock["c"])
	}
}

func TestDecrementAllNeverGoesNegativeUnderContention(t *testing.T) {
	// 10 units, 20 goroutines each taking 1: exactly 10 succeed.
	ledger := newMemLedger(map[string]int{"a": 10})

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := DecrementAll(context.Background(), ledger, []Adjustment{
				{ProductRef: "a", Quantity: 1},
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else if !errors.Is(err, ErrInsufficientStock) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 {
		t.Errorf("%d decrements succeeded, want 10", succeeded)
	}
	if ledger.stock["a"] != 0 {
		t.Errorf("stock = %d, want 0", ledger.stock["a"])
	}
}

type txKey struct{}

// txLedger dispatches the way the SQL adapter does: operations on a
// context carrying a transaction go to a buffer that only a commit
// folds into committed state, operations without one commit directly.
type txLedger struct {
	mu        sync.Mutex
	committed map[string]int
	buffered  map[string]int
}

func newTxLedger(stock map[string]int) *txLedger {
	committed := make(map[string]int, len(stock))
	for ref, qty := range stock {
		committed[ref] = qty
	}
	return &txLedger{committed: committed, buffered: make(map[string]int)}
}

func (l *txLedger) view(ctx context.Context, productRef string) int {
	available := l.committed[productRef]
	if ctx.Value(txKey{}) != nil {
		available += l.buffered[productRef]
	}
	return available
}

func (l *txLedger) apply(ctx context.Context, productRef string, delta int) {
	if ctx.Value(txKey{}) != nil {
		l.buffered[productRef] += delta
		return
	}
	l.committed[productRef] += delta
}

func (l *txLedger) rollback() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buffered = make(map[string]int)
}

func (l *txLedger) Available(ctx context.Context, productRef string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.view(ctx, productRef), nil
}

func (l *txLedger) TryDecrement(ctx context.Context, productRef string, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	available := l.view(ctx, productRef)
	if available < qty {
		return NewInsufficientStockError(productRef, qty, available)
	}
	l.apply(ctx, productRef, -qty)
	return nil
}

func (l *txLedger) Increment(ctx context.Context, productRef string, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.apply(ctx, productRef, qty)
	return nil
}

func TestDecrementAllCompensationStaysInTransaction(t *testing.T) {
	// A failed multi-line decrement inside a transaction: the rollback
	// discards the applied decrements, and the compensating increments
	// must be discarded with them. Compensation escaping to committed
	// state would inflate stock.
	ledger := newTxLedger(map[string]int{"p1": 5, "p2": 0})
	txCtx := context.WithValue(context.Background(), txKey{}, struct{}{})

	err := DecrementAll(txCtx, ledger, []Adjustment{
		{ProductRef: "p1", Quantity: 2},
		{ProductRef: "p2", Quantity: 1}, // fails
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}

	ledger.rollback()

	if got := ledger.committed["p1"]; got != 5 {
		t.Errorf("committed stock for p1 = %d, want 5 (compensation must ride the transaction)", got)
	}
}

func TestIncrementAllRestores(t *testing.T) {
	ledger := newMemLedger(map[string]int{"a": 0, "b": 0})

	err := IncrementAll(context.Background(), ledger, []Adjustment{
		{ProductRef: "a", Quantity: 2},
		{ProductRef: "b", Quantity: 3},
	})
	if err != nil {
		t.Fatalf("IncrementAll failed: %v", err)
	}

	if ledger.stock["a"] != 2 || ledger.stock["b"] != 3 {
		t.Errorf("stock = %v, want a=2 b=3", ledger.stock)
	}
}

func TestInsufficientStockErrorDetail(t *testing.T) {
	err := NewInsufficientStockError("prod-9", 4, 1)

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatal("errors.As failed")
	}
	if stockErr.ProductRef != "prod-9" || stockErr.Requested != 4 || stockErr.Available != 1 {
		t.Errorf("detail = %+v", stockErr)
	}
	if !errors.Is(err, ErrInsufficientStock) {
		t.Error("errors.Is(ErrInsufficientStock) should hold")
	}
	if len(stockErr.Stack()) == 0 {
		t.Error("stack should be captured")
	}
}
