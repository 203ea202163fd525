// Package service defines interfaces for domain services whose concrete
// implementations live in the infrastructure layer.
package service

import "context"

// PushService defines the interface for push notification delivery.
// Delivery is best-effort: callers log failures and move on.
type PushService interface {
	// SendToUser sends a push notification to every registered device token
	// of the given account.
	SendToUser(ctx context.Context, userID string, title, body string, data map[string]string) error
}
