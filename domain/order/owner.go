package order

// OwnerKind distinguishes registered customers from guest sessions.
type OwnerKind string

const (
	OwnerCustomer OwnerKind = "CUSTOMER"
	OwnerGuest    OwnerKind = "GUEST"
)

// OwnerRef identifies the party an order belongs to: exactly one of a
// registered-customer ID or a guest session ID, never both, never neither.
type OwnerRef struct {
	kind OwnerKind
	id   string
}

// NewCustomerRef creates an owner reference for a registered customer.
func NewCustomerRef(customerID string) (OwnerRef, error) {
	if customerID == "" {
		return OwnerRef{}, ErrInvalidOwner
	}
	return OwnerRef{kind: OwnerCustomer, id: customerID}, nil
}

// NewGuestRef creates an owner reference for an anonymous session.
func NewGuestRef(sessionID string) (OwnerRef, error) {
	if sessionID == "" {
		return OwnerRef{}, ErrInvalidOwner
	}
	return OwnerRef{kind: OwnerGuest, id: sessionID}, nil
}

// RebuildOwnerRef reconstructs an owner reference from storage.
// Repository layer use only.
func RebuildOwnerRef(kind OwnerKind, id string) OwnerRef {
	return OwnerRef{kind: kind, id: id}
}

func (r OwnerRef) Kind() OwnerKind { return r.kind }
func (r OwnerRef) ID() string      { return r.id }
func (r OwnerRef) IsGuest() bool   { return r.kind == OwnerGuest }
func (r OwnerRef) IsZero() bool    { return r.id == "" }

// String renders a stable "kind:id" form used in logs and event payloads.
func (r OwnerRef) String() string {
	return string(r.kind) + ":" + r.id
}

// Equals compares kind and ID.
func (r OwnerRef) Equals(other OwnerRef) bool {
	return r.kind == other.kind && r.id == other.id
}
