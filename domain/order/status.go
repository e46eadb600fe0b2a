package order

// Status order lifecycle state.
type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT" // created, inventory not reserved
	StatusProcessing     Status = "PROCESSING"      // paid or confirmed, stock decremented
	StatusShipped        Status = "SHIPPED"         // handed to carrier
	StatusDelivered      Status = "DELIVERED"       // terminal
	StatusCancelled      Status = "CANCELLED"       // terminal, may trigger restock
	StatusRefunded       Status = "REFUNDED"        // terminal, administrative
)

// allowedTransitions is the single source of truth for legal status moves.
// Terminal states map to an empty set.
var allowedTransitions = map[Status][]Status{
	StatusPendingPayment: {StatusProcessing, StatusShipped, StatusCancelled},
	StatusProcessing:     {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusDelivered},
	StatusDelivered:      {},
	StatusCancelled:      {},
	StatusRefunded:       {},
}

// ParseStatus validates an external status string.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := allowedTransitions[status]; !ok {
		return "", NewUnknownStatusError(s)
	}
	return status, nil
}

// CanTransitionTo reports whether target is reachable in one step.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// RequiresStockDecrement reports whether entering this status requires the
// order's stock effect to have been applied first.
func (s Status) RequiresStockDecrement() bool {
	return s == StatusProcessing || s == StatusShipped
}
