package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")

	// -- Resource State --
	ErrCartEmpty  = errors.New("cart is empty")
	ErrCartFrozen = errors.New("cart is locked while an order is processing")
)
