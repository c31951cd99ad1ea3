package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/damon-houk/account-order-service/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentClientAuthorize(t *testing.T) {
	ctx := context.Background()
	order := &entity.Order{AccountID: 7, Product: "Laptop", Quantity: 2, Price: 600.00}

	t.Run("Authorized charge", func(t *testing.T) {
		var received authorizationRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, authorizationPath, r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			json.NewEncoder(w).Encode(authorizationResponse{Authorized: true})
		}))
		defer server.Close()

		client := NewPaymentClient(server.URL, nil)

		authorized, err := client.Authorize(ctx, order)
		require.NoError(t, err)
		assert.True(t, authorized)

		// The full order amount is submitted
		assert.Equal(t, uint64(7), received.AccountID)
		assert.Equal(t, 1200.00, received.Amount)
	})

	t.Run("Declined charge is a verdict, not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(authorizationResponse{Authorized: false})
		}))
		defer server.Close()

		client := NewPaymentClient(server.URL, nil)

		authorized, err := client.Authorize(ctx, order)
		require.NoError(t, err)
		assert.False(t, authorized)
	})

	t.Run("Server error is a gateway failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewPaymentClient(server.URL, nil)

		authorized, err := client.Authorize(ctx, order)
		assert.False(t, authorized)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("Nil order is rejected locally", func(t *testing.T) {
		client := NewPaymentClient("http://unused", nil)

		authorized, err := client.Authorize(ctx, nil)
		assert.False(t, authorized)
		assert.True(t, errors.Is(err, entity.ErrInvalidArgument))
	})
}
