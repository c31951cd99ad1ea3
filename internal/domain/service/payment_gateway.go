package service

import (
	"context"

	"github.com/damon-houk/account-order-service/internal/domain/entity"
)

// PaymentGateway defines the interface for authorizing charges
type PaymentGateway interface {
	// Authorize submits the full order amount for authorization. The boolean
	// is the business verdict (true = authorized, false = declined); an error
	// is returned only when the gateway itself fails to answer.
	Authorize(ctx context.Context, order *entity.Order) (bool, error)
}
