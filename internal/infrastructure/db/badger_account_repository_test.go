package db

import (
	"context"
	"errors"
	"testing"

	"github.com/damon-houk/account-order-service/internal/domain/entity"
	"github.com/damon-houk/account-order-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAccount(first, last, email string) *entity.Account {
	return &entity.Account{FirstName: first, LastName: last, Email: email}
}

func TestAccountCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Persists and sends welcome notification", func(t *testing.T) {
		store := newTestStore(t)
		notifier := new(mocks.MockNotificationGateway)
		repo := NewBadgerAccountRepository(store, notifier, nil)

		notifier.On("Send", ctx, "a@x.com", welcomeSubject, welcomeBody).Return(nil).Once()

		acc, err := repo.Create(ctx, newAccount("A", "B", "a@x.com"))
		require.NoError(t, err)
		assert.Greater(t, acc.ID, uint64(0))

		stored, err := repo.FindByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", stored.Email)

		notifier.AssertExpectations(t)
	})

	t.Run("Nil account", func(t *testing.T) {
		store := newTestStore(t)
		notifier := new(mocks.MockNotificationGateway)
		repo := NewBadgerAccountRepository(store, notifier, nil)

		acc, err := repo.Create(ctx, nil)
		assert.Nil(t, acc)
		assert.True(t, errors.Is(err, entity.ErrInvalidArgument))
		notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Duplicate email is a conflict", func(t *testing.T) {
		store := newTestStore(t)
		notifier := new(mocks.MockNotificationGateway)
		repo := NewBadgerAccountRepository(store, notifier, nil)

		notifier.On("Send", ctx, "a@x.com", welcomeSubject, welcomeBody).Return(nil).Once()

		_, err := repo.Create(ctx, newAccount("A", "B", "a@x.com"))
		require.NoError(t, err)

		acc, err := repo.Create(ctx, newAccount("C", "D", "a@x.com"))
		assert.Nil(t, acc)
		assert.True(t, errors.Is(err, entity.ErrConflict))
		assert.Contains(t, err.Error(), "already in use")

		// Only the first create reached the gateway
		notifier.AssertExpectations(t)
	})

	t.Run("Email uniqueness is case-sensitive", func(t *testing.T) {
		store := newTestStore(t)
		notifier := new(mocks.MockNotificationGateway)
		repo := NewBadgerAccountRepository(store, notifier, nil)

		notifier.On("Send", ctx, mock.Anything, welcomeSubject, welcomeBody).Return(nil).Twice()

		_, err := repo.Create(ctx, newAccount("A", "B", "a@x.com"))
		require.NoError(t, err)

		_, err = repo.Create(ctx, newAccount("C", "D", "A@x.com"))
		assert.NoError(t, err)
	})

	t.Run("Notification failure leaves the account committed", func(t *testing.T) {
		store := newTestStore(t)
		notifier := new(mocks.MockNotificationGateway)
		repo := NewBadgerAccountRepository(store, notifier, nil)

		notifier.On("Send", ctx, "a@x.com", welcomeSubject, welcomeBody).
			Return(errors.New("smtp unavailable")).Once()

		acc, err := repo.Create(ctx, newAccount("A", "B", "a@x.com"))
		assert.True(t, errors.Is(err, entity.ErrGatewayFailure))
		require.NotNil(t, acc)

		stored, findErr := repo.FindByID(ctx, acc.ID)
		require.NoError(t, findErr)
		assert.Equal(t, "a@x.com", stored.Email)
	})
}

func TestAccountUpdate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*BadgerAccountRepository, *entity.Account) {
		store := newTestStore(t)
		notifier := new(mocks.MockNotificationGateway)
		notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		repo := NewBadgerAccountRepository(store, notifier, nil)

		acc, err := repo.Create(ctx, newAccount("A", "B", "a@x.com"))
		require.NoError(t, err)
		return repo, acc
	}

	t.Run("Nonexistent account", func(t *testing.T) {
		repo, _ := setup(t)

		updated, err := repo.Update(ctx, &entity.Account{ID: 9999, FirstName: "A", LastName: "B", Email: "z@x.com"})
		assert.Nil(t, updated)
		assert.True(t, errors.Is(err, entity.ErrNotFound))
	})

	t.Run("Full-record replacement", func(t *testing.T) {
		repo, acc := setup(t)

		_, err := repo.Update(ctx, &entity.Account{ID: acc.ID, FirstName: "New", LastName: "Name", Email: "a@x.com"})
		require.NoError(t, err)

		stored, err := repo.FindByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", stored.FirstName)
		assert.Equal(t, "Name", stored.LastName)
	})

	t.Run("Replaying the same update is idempotent", func(t *testing.T) {
		repo, acc := setup(t)

		replacement := &entity.Account{ID: acc.ID, FirstName: "New", LastName: "Name", Email: "a@x.com"}
		_, err := repo.Update(ctx, replacement)
		require.NoError(t, err)
		_, err = repo.Update(ctx, replacement)
		require.NoError(t, err)

		stored, err := repo.FindByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", stored.FirstName)
	})

	t.Run("Email change to a taken address is a conflict", func(t *testing.T) {
		repo, acc := setup(t)

		_, err := repo.Create(ctx, newAccount("C", "D", "taken@x.com"))
		require.NoError(t, err)

		updated, err := repo.Update(ctx, &entity.Account{ID: acc.ID, FirstName: "A", LastName: "B", Email: "taken@x.com"})
		assert.Nil(t, updated)
		assert.True(t, errors.Is(err, entity.ErrConflict))
	})

	t.Run("Email change frees the old address", func(t *testing.T) {
		repo, acc := setup(t)

		_, err := repo.Update(ctx, &entity.Account{ID: acc.ID, FirstName: "A", LastName: "B", Email: "new@x.com"})
		require.NoError(t, err)

		oldTaken, err := repo.EmailExists(ctx, "a@x.com")
		require.NoError(t, err)
		assert.False(t, oldTaken)

		newTaken, err := repo.EmailExists(ctx, "new@x.com")
		require.NoError(t, err)
		assert.True(t, newTaken)
	})
}

func TestAccountDelete(t *testing.T) {
	ctx := context.Background()

	store := newTestStore(t)
	notifier := new(mocks.MockNotificationGateway)
	notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo := NewBadgerAccountRepository(store, notifier, nil)

	acc, err := repo.Create(ctx, newAccount("A", "B", "a@x.com"))
	require.NoError(t, err)

	t.Run("First delete removes and returns true", func(t *testing.T) {
		removed, err := repo.Delete(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		exists, err := repo.Exists(ctx, acc.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Second delete returns false without error", func(t *testing.T) {
		removed, err := repo.Delete(ctx, acc.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("Delete frees the email address", func(t *testing.T) {
		taken, err := repo.EmailExists(ctx, "a@x.com")
		require.NoError(t, err)
		assert.False(t, taken)

		_, err = repo.Create(ctx, newAccount("C", "D", "a@x.com"))
		assert.NoError(t, err)
	})
}

func TestAccountQueries(t *testing.T) {
	ctx := context.Background()

	store := newTestStore(t)
	notifier := new(mocks.MockNotificationGateway)
	notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo := NewBadgerAccountRepository(store, notifier, nil)

	payments := new(mocks.MockPaymentGateway)
	payments.On("Authorize", mock.Anything, mock.Anything).Return(true, nil)
	orderRepo := NewBadgerOrderRepository(store, payments, nil)

	owner, err := repo.Create(ctx, newAccount("A", "B", "a@x.com"))
	require.NoError(t, err)
	other, err := repo.Create(ctx, newAccount("C", "D", "c@x.com"))
	require.NoError(t, err)

	_, err = orderRepo.Create(ctx, &entity.Order{AccountID: owner.ID, Product: "Laptop", Quantity: 1, Price: 1200.00})
	require.NoError(t, err)
	_, err = orderRepo.Create(ctx, &entity.Order{AccountID: owner.ID, Product: "Mouse", Quantity: 2, Price: 25.50})
	require.NoError(t, err)
	_, err = orderRepo.Create(ctx, &entity.Order{AccountID: other.ID, Product: "Desk", Quantity: 1, Price: 300.00})
	require.NoError(t, err)

	t.Run("FindAll returns every account", func(t *testing.T) {
		accounts, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, accounts, 2)
	})

	t.Run("FindByID reports absence as not found", func(t *testing.T) {
		acc, err := repo.FindByID(ctx, 9999)
		assert.Nil(t, acc)
		assert.True(t, errors.Is(err, entity.ErrNotFound))
	})

	t.Run("FindWithOrders resolves exactly the owned orders", func(t *testing.T) {
		acc, err := repo.FindWithOrders(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, acc.Orders, 2)

		products := []string{acc.Orders[0].Product, acc.Orders[1].Product}
		assert.ElementsMatch(t, []string{"Laptop", "Mouse"}, products)
	})

	t.Run("FindWithOrders on a missing account", func(t *testing.T) {
		acc, err := repo.FindWithOrders(ctx, 9999)
		assert.Nil(t, acc)
		assert.True(t, errors.Is(err, entity.ErrNotFound))
	})

	t.Run("Exists", func(t *testing.T) {
		exists, err := repo.Exists(ctx, owner.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.Exists(ctx, 9999)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("EmailExists rejects blank input", func(t *testing.T) {
		_, err := repo.EmailExists(ctx, "   ")
		assert.True(t, errors.Is(err, entity.ErrInvalidArgument))
	})

	t.Run("EmailExists is case-sensitive", func(t *testing.T) {
		taken, err := repo.EmailExists(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.EmailExists(ctx, "A@X.COM")
		require.NoError(t, err)
		assert.False(t, taken)
	})
}

func TestSendNotification(t *testing.T) {
	ctx := context.Background()

	store := newTestStore(t)
	notifier := new(mocks.MockNotificationGateway)
	repo := NewBadgerAccountRepository(store, notifier, nil)

	t.Run("Blank email", func(t *testing.T) {
		err := repo.SendNotification(ctx, "", "subject", "body")
		assert.True(t, errors.Is(err, entity.ErrInvalidArgument))
	})

	t.Run("Delegates to the gateway", func(t *testing.T) {
		notifier.On("Send", ctx, "a@x.com", "subject", "body").Return(nil).Once()

		err := repo.SendNotification(ctx, "a@x.com", "subject", "body")
		assert.NoError(t, err)
		notifier.AssertExpectations(t)
	})

	t.Run("Propagates gateway failure", func(t *testing.T) {
		notifier.On("Send", ctx, "b@x.com", "subject", "body").
			Return(errors.New("connection refused")).Once()

		err := repo.SendNotification(ctx, "b@x.com", "subject", "body")
		assert.True(t, errors.Is(err, entity.ErrGatewayFailure))
	})
}
