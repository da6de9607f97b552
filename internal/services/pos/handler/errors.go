package handler

import (
	"fmt"

	"syntra-pos/internal/database/models"
)

var (
	ErrEmptyCart       = fmt.Errorf("%w: cart is empty", models.ErrValidation)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be greater than 0", models.ErrValidation)
	ErrNegativePrice   = fmt.Errorf("%w: price must not be negative", models.ErrValidation)
	ErrOutOfStock      = fmt.Errorf("%w: out of stock", models.ErrValidation)
	ErrProductNotFound = fmt.Errorf("product %w", models.ErrNotFound)
	ErrOrderNotFound   = fmt.Errorf("order %w", models.ErrNotFound)
)

// OutOfStockError names the first cart line that cannot be served from stock.
type OutOfStockError struct {
	ProductID   int
	ProductName string
	Available   int
	Requested   int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("out of stock: %s (available %d, requested %d)", e.ProductName, e.Available, e.Requested)
}

func (e *OutOfStockError) Unwrap() error {
	return ErrOutOfStock
}
