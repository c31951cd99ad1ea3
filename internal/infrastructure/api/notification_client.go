package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const notificationPath = "/v1/notifications"

// NotificationClient implements the notification gateway interface over HTTP
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNotificationClient creates a new notification gateway client
func NewNotificationClient(baseURL string, httpClient *http.Client) *NotificationClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	return &NotificationClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// notificationRequest is the wire format accepted by the gateway
type notificationRequest struct {
	Address string `json:"address"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send delivers a message to an address. Any non-2xx response is a gateway
// failure; there is no retry at this layer.
func (c *NotificationClient) Send(ctx context.Context, address, subject, body string) error {
	payload, err := json.Marshal(notificationRequest{
		Address: address,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+notificationPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("notification gateway returned status %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
