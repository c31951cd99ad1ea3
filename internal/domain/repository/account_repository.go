package repository

import (
	"context"

	"github.com/damon-houk/account-order-service/internal/domain/entity"
)

// AccountRepository defines the interface for account storage
type AccountRepository interface {
	// FindAll retrieves every stored account, order unspecified
	FindAll(ctx context.Context) ([]*entity.Account, error)

	// FindByID retrieves an account by its key. Returns entity.ErrNotFound
	// (wrapped) when no account holds the key; absence is a legitimate
	// result, not a storage failure.
	FindByID(ctx context.Context, id uint64) (*entity.Account, error)

	// FindWithOrders retrieves an account together with all of its orders,
	// resolved eagerly in the same logical operation.
	FindWithOrders(ctx context.Context, id uint64) (*entity.Account, error)

	// Create validates the account, enforces email uniqueness, persists it
	// with a store-assigned key, and then sends a welcome notification to
	// the new account's email address.
	Create(ctx context.Context, account *entity.Account) (*entity.Account, error)

	// Update replaces the entire stored record with the incoming one.
	Update(ctx context.Context, account *entity.Account) (*entity.Account, error)

	// Delete removes the account if present. Returns true if an account
	// existed and was removed, false otherwise; a missing key is not an error.
	Delete(ctx context.Context, id uint64) (bool, error)

	// Exists reports whether an account with the given key is stored
	Exists(ctx context.Context, id uint64) (bool, error)

	// EmailExists reports whether any account holds the given email address,
	// compared case-sensitively.
	EmailExists(ctx context.Context, email string) (bool, error)

	// SendNotification delivers a message to the given address through the
	// notification gateway.
	SendNotification(ctx context.Context, email, subject, body string) error
}
