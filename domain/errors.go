package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")

	// ErrInsufficientStock means the requested quantity exceeds the
	// available stock. Nothing is written when it is returned.
	ErrInsufficientStock = errors.New("not enough stock available")

	ErrNotProductSeller    = errors.New("only the product seller may do this")
	ErrOrderAlreadyDecided = errors.New("order has already been decided")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
)
