package service

import "context"

// NotificationGateway defines the interface for delivering messages to an address
type NotificationGateway interface {
	// Send delivers a message. A non-nil error means the gateway failed to
	// complete the delivery.
	Send(ctx context.Context, address, subject, body string) error
}
