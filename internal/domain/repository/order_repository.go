package repository

import (
	"context"

	"github.com/damon-houk/account-order-service/internal/domain/entity"
)

// OrderRepository defines the interface for order storage
type OrderRepository interface {
	// FindAll retrieves every stored order, order unspecified
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// FindByID retrieves an order by its key. Returns entity.ErrNotFound
	// (wrapped) when no order holds the key.
	FindByID(ctx context.Context, id uint64) (*entity.Order, error)

	// FindByAccount retrieves all orders belonging to the given account.
	// Fails with entity.ErrNotFound if the account itself does not exist,
	// so a query against a nonexistent account is reported as an account
	// problem rather than an empty result.
	FindByAccount(ctx context.Context, accountID uint64) ([]*entity.Order, error)

	// Create validates the order, verifies the referenced account exists,
	// authorizes payment for the full amount, and only then persists the
	// order with a store-assigned key. A declined authorization fails with
	// entity.ErrConflict and leaves nothing persisted.
	Create(ctx context.Context, order *entity.Order) (*entity.Order, error)

	// Update replaces the entire stored record with the incoming one.
	// Account existence is not re-validated and payment is not re-run;
	// only creation is payment-gated.
	Update(ctx context.Context, order *entity.Order) (*entity.Order, error)

	// Delete removes the order if present. Returns true if an order existed
	// and was removed, false otherwise. No refund is performed.
	Delete(ctx context.Context, id uint64) (bool, error)

	// Exists reports whether an order with the given key is stored
	Exists(ctx context.Context, id uint64) (bool, error)

	// ProcessPayment submits the order to the payment gateway and returns
	// its verdict without persisting anything.
	ProcessPayment(ctx context.Context, order *entity.Order) (bool, error)
}
