package errors

import (
	stdErrors "errors"

	"shopcore/domain/inventory"
	"shopcore/domain/order"
	"shopcore/domain/shared"
)

// FromDomainError translates a domain error into an AppError with a
// stable code. Unknown errors become CodeInternal so nothing internal
// leaks to clients by accident.
func FromDomainError(err error) *AppError {
	var appErr *AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, err.Error())
	case stdErrors.Is(err, order.ErrAlreadyPaid):
		return Wrap(err, CodeAlreadyPaid, err.Error())
	case stdErrors.Is(err, order.ErrIllegalTransition), stdErrors.Is(err, order.ErrUnknownStatus):
		return Wrap(err, CodeInvalidOrderState, err.Error())
	case stdErrors.Is(err, order.ErrEmptyCart):
		return Wrap(err, CodeEmptyCart, err.Error())
	case stdErrors.Is(err, order.ErrConcurrentModification):
		return Wrap(err, CodeConcurrentModify, err.Error())
	case stdErrors.Is(err, order.ErrInvalidOwner),
		stdErrors.Is(err, order.ErrInvalidQuantity),
		stdErrors.Is(err, order.ErrNegativeGrandTotal):
		return Wrap(err, CodeValidation, err.Error())
	case stdErrors.Is(err, inventory.ErrInsufficientStock):
		return Wrap(err, CodeInsufficientStock, err.Error())
	case stdErrors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case stdErrors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case stdErrors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal error")
	}
}
