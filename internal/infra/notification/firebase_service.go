// Package notification provides the push-delivery implementation backed by
// Firebase Cloud Messaging.
package notification

import (
	"context"
	"fmt"

	"commune/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a new Firebase push service instance
func NewFirebaseService(ctx context.Context, credentialsPath string) (service.PushService, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &firebaseService{
		client: client,
	}, nil
}

// SendToUser sends a push notification to the account's personal topic.
// Clients subscribe to their own topic on login, so no device token table
// is needed server-side.
func (s *firebaseService) SendToUser(ctx context.Context, userID string, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Topic: userTopic(userID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

// userTopic derives the per-account FCM topic name.
func userTopic(userID string) string {
	return "user-" + userID
}
