package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/damon-houk/account-order-service/internal/domain/entity"
)

const authorizationPath = "/v1/authorizations"

// PaymentClient implements the payment gateway interface over HTTP
type PaymentClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPaymentClient creates a new payment gateway client
func NewPaymentClient(baseURL string, httpClient *http.Client) *PaymentClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	return &PaymentClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// authorizationRequest is the wire format accepted by the gateway. Amount is
// the full order total the charge is authorized for.
type authorizationRequest struct {
	AccountID uint64  `json:"account_id"`
	Product   string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Amount    float64 `json:"amount"`
}

// authorizationResponse is the gateway's business verdict
type authorizationResponse struct {
	Authorized bool `json:"authorized"`
}

// Authorize submits the full order amount for authorization. A declined
// charge is a verdict, not an error; only transport or server failures are
// reported as errors.
func (c *PaymentClient) Authorize(ctx context.Context, order *entity.Order) (bool, error) {
	if order == nil {
		return false, fmt.Errorf("%w: order is required", entity.ErrInvalidArgument)
	}

	payload, err := json.Marshal(authorizationRequest{
		AccountID: order.AccountID,
		Product:   order.Product,
		Quantity:  order.Quantity,
		Price:     order.Price,
		Amount:    order.Total(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal authorization request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authorizationPath, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, respBody)
	}

	var verdict authorizationResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return false, fmt.Errorf("failed to decode authorization response: %w", err)
	}

	return verdict.Authorized, nil
}
