package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnidentifiedUser     = errors.New("unidentified user")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrProductNotFound      = errors.New("product not found")
	ErrProductNameRequired  = errors.New("product name required")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidID            = errors.New("invalid id")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrOrderNotFound        = errors.New("order not found")
	ErrDiscountNotFound     = errors.New("discount code not found")
	ErrDiscountCodeRequired = errors.New("discount code required")
	ErrDiscountCodeTaken    = errors.New("discount code already exists")
	ErrInvalidPercentOff    = errors.New("percent off must be between 0 and 100")
	ErrInvalidUses          = errors.New("uses remaining must not be negative")
	ErrForbidden            = errors.New("access denied")
)

// InsufficientStockError reports which product a checkout attempt was short
// on. It unwraps to ErrInsufficientStock so callers can match the class.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s", e.ProductName)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
