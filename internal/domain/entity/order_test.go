package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderValidate(t *testing.T) {
	valid := func() Order {
		return Order{
			AccountID: 1,
			Product:   "Laptop",
			Quantity:  1,
			Price:     1200.00,
		}
	}

	t.Run("Valid order", func(t *testing.T) {
		o := valid()
		assert.NoError(t, o.Validate())
	})

	t.Run("Missing account id", func(t *testing.T) {
		o := valid()
		o.AccountID = 0

		err := o.Validate()
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})

	t.Run("Missing product", func(t *testing.T) {
		o := valid()
		o.Product = " "

		err := o.Validate()
		assert.True(t, errors.Is(err, ErrInvalidArgument))
		assert.Contains(t, err.Error(), "product is required")
	})

	t.Run("Product too long", func(t *testing.T) {
		o := valid()
		o.Product = strings.Repeat("x", 101)

		err := o.Validate()
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})

	t.Run("Zero quantity", func(t *testing.T) {
		o := valid()
		o.Quantity = 0

		err := o.Validate()
		assert.True(t, errors.Is(err, ErrInvalidArgument))
		assert.Contains(t, err.Error(), "quantity must be at least 1")
	})

	t.Run("Negative price", func(t *testing.T) {
		o := valid()
		o.Price = -0.01

		err := o.Validate()
		assert.True(t, errors.Is(err, ErrInvalidArgument))
		assert.Contains(t, err.Error(), "price must be a positive value")
	})
}

func TestOrderTotal(t *testing.T) {
	t.Run("Whole amounts", func(t *testing.T) {
		o := Order{Quantity: 3, Price: 10.00}
		assert.Equal(t, 30.00, o.Total())
	})

	t.Run("Rounds to the nearest cent", func(t *testing.T) {
		o := Order{Quantity: 3, Price: 0.10}
		assert.Equal(t, 0.30, o.Total())
	})
}
