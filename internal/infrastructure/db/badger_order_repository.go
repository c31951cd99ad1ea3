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

// BadgerOrderRepository implements the order repository interface using BadgerDB
type BadgerOrderRepository struct {
	store    *Store
	payments service.PaymentGateway
	logger   logger.Logger
}

// NewBadgerOrderRepository creates a new BadgerDB order repository
func NewBadgerOrderRepository(store *Store, payments service.PaymentGateway, log logger.Logger) *BadgerOrderRepository {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &BadgerOrderRepository{
		store:    store,
		payments: payments,
		logger:   log,
	}
}

// FindAll retrieves every stored order
func (r *BadgerOrderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0)

	err := r.store.db.View(func(txn *badger.Txn) error {
		return scanOrders(txn, func(o *entity.Order) {
			orders = append(orders, o)
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// FindByID retrieves an order by its key
func (r *BadgerOrderRepository) FindByID(ctx context.Context, id uint64) (*entity.Order, error) {
	var order entity.Order

	err := r.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(orderKey(id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &order)
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("%w: order %d", entity.ErrNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	return &order, nil
}

// FindByAccount retrieves all orders belonging to the given account. The
// account is checked first so that querying orders for a nonexistent
// account surfaces as an account problem, not an empty result.
func (r *BadgerOrderRepository) FindByAccount(ctx context.Context, accountID uint64) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0)

	err := r.store.db.View(func(txn *badger.Txn) error {
		exists, err := keyExists(txn, accountKey(accountID))
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: account %d", entity.ErrNotFound, accountID)
		}

		return scanOrders(txn, func(o *entity.Order) {
			if o.AccountID == accountID {
				orders = append(orders, o)
			}
		})
	})

	if errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list orders for account %d: %w", accountID, err)
	}

	return orders, nil
}

// Create gates persistence on payment. The sequence is strict: the account
// must exist, then the full amount is authorized, and only then is the order
// written. A declined authorization leaves nothing behind. The payment call
// cannot run inside a store transaction, so an account deleted between the
// existence check and the write is not re-detected; that matches the
// reference behavior.
func (r *BadgerOrderRepository) Create(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	if order == nil {
		return nil, fmt.Errorf("%w: order is required", entity.ErrInvalidArgument)
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	accountExists, err := r.accountExists(order.AccountID)
	if err != nil {
		return nil, err
	}
	if !accountExists {
		return nil, fmt.Errorf("%w: account %d", entity.ErrNotFound, order.AccountID)
	}

	authorized, err := r.ProcessPayment(ctx, order)
	if err != nil {
		return nil, err
	}
	if !authorized {
		r.logger.Warn("Payment declined", map[string]interface{}{
			"account_id": order.AccountID,
			"product":    order.Product,
			"amount":     order.Total(),
		})
		return nil, fmt.Errorf("%w: payment processing failed", entity.ErrConflict)
	}

	id, err := r.store.NextOrderID()
	if err != nil {
		return nil, err
	}
	order.ID = id
	order.Price = entity.RoundCents(order.Price)

	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}

	err = r.store.db.Update(func(txn *badger.Txn) error {
		return txn.Set(orderKey(order.ID), data)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	r.logger.Info("Order created", map[string]interface{}{
		"id":         order.ID,
		"account_id": order.AccountID,
		"product":    order.Product,
		"amount":     order.Total(),
	})

	return order, nil
}

// Update replaces the entire stored record with the incoming one. Account
// existence is not re-validated and payment is not re-run; only creation is
// payment-gated.
func (r *BadgerOrderRepository) Update(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	if order == nil {
		return nil, fmt.Errorf("%w: order is required", entity.ErrInvalidArgument)
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	order.Price = entity.RoundCents(order.Price)

	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}

	err = r.store.db.Update(func(txn *badger.Txn) error {
		exists, err := keyExists(txn, orderKey(order.ID))
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: order %d", entity.ErrNotFound, order.ID)
		}

		return txn.Set(orderKey(order.ID), data)
	})

	if errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	r.logger.Info("Order updated", map[string]interface{}{"id": order.ID})

	return order, nil
}

// Delete removes the order if present. No refund or compensating payment
// action is performed.
func (r *BadgerOrderRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	removed := false

	err := r.store.db.Update(func(txn *badger.Txn) error {
		exists, err := keyExists(txn, orderKey(id))
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}

		if err := txn.Delete(orderKey(id)); err != nil {
			return err
		}

		removed = true
		return nil
	})

	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	if removed {
		r.logger.Info("Order deleted", map[string]interface{}{"id": id})
	}

	return removed, nil
}

// Exists reports whether an order with the given key is stored
func (r *BadgerOrderRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var exists bool

	err := r.store.db.View(func(txn *badger.Txn) error {
		var err error
		exists, err = keyExists(txn, orderKey(id))
		return err
	})

	if err != nil {
		return false, fmt.Errorf("failed to check order existence: %w", err)
	}

	return exists, nil
}

// ProcessPayment submits the order to the payment gateway and returns its
// verdict. Exposed separately from Create so the gating decision is
// independently testable and a caller can pre-authorize without committing.
func (r *BadgerOrderRepository) ProcessPayment(ctx context.Context, order *entity.Order) (bool, error) {
	if order == nil {
		return false, fmt.Errorf("%w: order is required", entity.ErrInvalidArgument)
	}

	authorized, err := r.payments.Authorize(ctx, order)
	if err != nil {
		return false, fmt.Errorf("%w: payment authorization: %w", entity.ErrGatewayFailure, err)
	}

	return authorized, nil
}

func (r *BadgerOrderRepository) accountExists(id uint64) (bool, error) {
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

// scanOrders iterates every stored order inside an open transaction
func scanOrders(txn *badger.Txn, visit func(*entity.Order)) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(orderPrefix)

	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		err := it.Item().Value(func(val []byte) error {
			var o entity.Order
			if err := json.Unmarshal(val, &o); err != nil {
				return err
			}
			visit(&o)
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}
