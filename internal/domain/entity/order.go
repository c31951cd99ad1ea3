package entity

import (
	"fmt"
	"math"
	"strings"
)

// Order represents a purchase placed by an account
type Order struct {
	ID        uint64  `json:"id"`
	AccountID uint64  `json:"account_id"`
	Product   string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Validate ensures the order meets all requirements
func (o *Order) Validate() error {
	if o.AccountID == 0 {
		return fmt.Errorf("%w: account id is required", ErrInvalidArgument)
	}

	if strings.TrimSpace(o.Product) == "" {
		return fmt.Errorf("%w: product is required", ErrInvalidArgument)
	}

	if len(o.Product) > 100 {
		return fmt.Errorf("%w: product must not exceed 100 characters", ErrInvalidArgument)
	}

	if o.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidArgument)
	}

	if o.Price <= 0 {
		return fmt.Errorf("%w: price must be a positive value", ErrInvalidArgument)
	}

	return nil
}

// Total returns the full order amount (quantity times price) rounded to
// the nearest cent. This is the amount submitted for payment authorization.
func (o *Order) Total() float64 {
	return RoundCents(float64(o.Quantity) * o.Price)
}

// RoundCents rounds a monetary amount to two decimal places.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
