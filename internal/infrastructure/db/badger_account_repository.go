package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/damon-houk/account-order-service/internal/domain/entity"
	"github.com/damon-houk/account-order-service/internal/domain/service"
	"github.com/damon-houk/account-order-service/internal/infrastructure/logger"
	"github.com/dgraph-io/badger/v3"
)

// Welcome message sent after an account is persisted
const (
	welcomeSubject = "Welcome!"
	welcomeBody    = "Thank you for creating an account with us."
)

// BadgerAccountRepository implements the account repository interface using BadgerDB
type BadgerAccountRepository struct {
	store    *Store
	notifier service.NotificationGateway
	logger   logger.Logger
}

// NewBadgerAccountRepository creates a new BadgerDB account repository
func NewBadgerAccountRepository(store *Store, notifier service.NotificationGateway, log logger.Logger) *BadgerAccountRepository {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &BadgerAccountRepository{
		store:    store,
		notifier: notifier,
		logger:   log,
	}
}

// FindAll retrieves every stored account
func (r *BadgerAccountRepository) FindAll(ctx context.Context) ([]*entity.Account, error) {
	accounts := make([]*entity.Account, 0)

	err := r.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(accountPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var acc entity.Account
				if err := json.Unmarshal(val, &acc); err != nil {
					return err
				}
				accounts = append(accounts, &acc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

// FindByID retrieves an account by its key
func (r *BadgerAccountRepository) FindByID(ctx context.Context, id uint64) (*entity.Account, error) {
	var acc entity.Account

	err := r.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(accountKey(id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &acc)
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("%w: account %d", entity.ErrNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve account: %w", err)
	}

	return &acc, nil
}

// FindWithOrders retrieves an account and eagerly resolves all of its orders
// in the same logical operation, so callers never pay a per-order round trip.
func (r *BadgerAccountRepository) FindWithOrders(ctx context.Context, id uint64) (*entity.Account, error) {
	acc, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	orders := make([]entity.Order, 0)

	err = r.store.db.View(func(txn *badger.Txn) error {
		return scanOrders(txn, func(o *entity.Order) {
			if o.AccountID == id {
				orders = append(orders, *o)
			}
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to resolve orders for account %d: %w", id, err)
	}

	acc.Orders = orders
	return acc, nil
}

// Create persists a new account and then dispatches a welcome notification.
// The uniqueness probe and the writes of the record and its email index entry
// share one transaction, so two racing creates with the same email cannot
// both commit. If the notification fails the account remains committed and
// the failure is propagated; there is no compensating delete.
func (r *BadgerAccountRepository) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if account == nil {
		return nil, fmt.Errorf("%w: account is required", entity.ErrInvalidArgument)
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	id, err := r.store.NextAccountID()
	if err != nil {
		return nil, err
	}
	account.ID = id

	data, err := json.Marshal(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	err = r.store.db.Update(func(txn *badger.Txn) error {
		taken, err := keyExists(txn, emailKey(account.Email))
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: email %s is already in use", entity.ErrConflict, account.Email)
		}

		if err := txn.Set(accountKey(account.ID), data); err != nil {
			return err
		}
		return txn.Set(emailKey(account.Email), nil)
	})

	if errors.Is(err, badger.ErrConflict) {
		return nil, fmt.Errorf("%w: email %s is already in use", entity.ErrConflict, account.Email)
	}

	if err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to store account: %w", err)
	}

	r.logger.Info("Account created", map[string]interface{}{
		"id":    account.ID,
		"email": account.Email,
	})

	if err := r.SendNotification(ctx, account.Email, welcomeSubject, welcomeBody); err != nil {
		r.logger.Error("Welcome notification failed after account was persisted", map[string]interface{}{
			"id":    account.ID,
			"email": account.Email,
			"error": err.Error(),
		})
		return account, err
	}

	return account, nil
}

// Update replaces the entire stored record with the incoming one. Fields not
// set on the incoming account overwrite the stored values; there is no patch.
func (r *BadgerAccountRepository) Update(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if account == nil {
		return nil, fmt.Errorf("%w: account is required", entity.ErrInvalidArgument)
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	err = r.store.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(accountKey(account.ID))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: account %d", entity.ErrNotFound, account.ID)
		}
		if err != nil {
			return err
		}

		var stored entity.Account
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
		if err != nil {
			return err
		}

		if stored.Email != account.Email {
			taken, err := keyExists(txn, emailKey(account.Email))
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: email %s is already in use", entity.ErrConflict, account.Email)
			}

			if err := txn.Delete(emailKey(stored.Email)); err != nil {
				return err
			}
			if err := txn.Set(emailKey(account.Email), nil); err != nil {
				return err
			}
		}

		return txn.Set(accountKey(account.ID), data)
	})

	if errors.Is(err, badger.ErrConflict) {
		return nil, fmt.Errorf("%w: email %s is already in use", entity.ErrConflict, account.Email)
	}

	if err != nil {
		if errors.Is(err, entity.ErrNotFound) || errors.Is(err, entity.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	r.logger.Info("Account updated", map[string]interface{}{"id": account.ID})

	return account, nil
}

// Delete removes the account and its email index entry. Orders owned by the
// account are left in place; there is no cascading delete.
func (r *BadgerAccountRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	removed := false

	err := r.store.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(accountKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		var stored entity.Account
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
		if err != nil {
			return err
		}

		if err := txn.Delete(emailKey(stored.Email)); err != nil {
			return err
		}
		if err := txn.Delete(accountKey(id)); err != nil {
			return err
		}

		removed = true
		return nil
	})

	if err != nil {
		return false, fmt.Errorf("failed to delete account: %w", err)
	}

	if removed {
		r.logger.Info("Account deleted", map[string]interface{}{"id": id})
	}

	return removed, nil
}

// Exists reports whether an account with the given key is stored
func (r *BadgerAccountRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var exists bool

	err := r.store.db.View(func(txn *badger.Txn) error {
		var err error
		exists, err = keyExists(txn, accountKey(id))
		return err
	})

	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}

	return exists, nil
}

// EmailExists reports whether any account holds the given email address.
// The comparison is case-sensitive.
func (r *BadgerAccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	if isBlank(email) {
		return false, fmt.Errorf("%w: email is required", entity.ErrInvalidArgument)
	}

	var exists bool

	err := r.store.db.View(func(txn *badger.Txn) error {
		var err error
		exists, err = keyExists(txn, emailKey(email))
		return err
	})

	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// SendNotification delivers a message through the notification gateway
func (r *BadgerAccountRepository) SendNotification(ctx context.Context, email, subject, body string) error {
	if isBlank(email) {
		return fmt.Errorf("%w: email is required", entity.ErrInvalidArgument)
	}

	if err := r.notifier.Send(ctx, email, subject, body); err != nil {
		return fmt.Errorf("%w: notification to %s: %w", entity.ErrGatewayFailure, email, err)
	}

	return nil
}
