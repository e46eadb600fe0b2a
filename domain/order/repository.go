package order

import "context"

// Repository order repository interface.
//
// Save must enforce optimistic concurrency: for an existing aggregate it
// fails with ErrConcurrentModification when the stored version no longer
// matches the loaded one. This is what serializes concurrent payment
// confirmations on the same order.
type Repository interface {
	// Save persists the aggregate (insert when IsNew, versioned update
	// otherwise). Events are collected by the unit of work, not here.
	Save(ctx context.Context, o *Order) error

	// FindByID loads the aggregate root by ID.
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByOwner lists an owner's orders, newest first.
	FindByOwner(ctx context.Context, owner OwnerRef) ([]*Order, error)
}

// CartSnapshot is the input to checkout, read from the external cart
// collaborator. It is not persisted by this core.
type CartSnapshot struct {
	Lines []CartLine
}

// CartLine is one cart entry. UnitPrice is the price at add-to-cart time
// and is deliberately not re-fetched at checkout ("price shown to
// customer" semantics).
type CartLine struct {
	ProductRef  string
	ProductName string
	Quantity    int
	UnitPrice   int64
}

// IsEmpty reports whether there is anything to check out.
func (s CartSnapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}
