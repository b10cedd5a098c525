package service

import (
	"context"
	"fmt"

	"greenloop-backend/internal/domain"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type pushService struct {
	client *messaging.Client
}

// NewPushService builds an FCM-backed push sender from a service
// account credentials file.
func NewPushService(ctx context.Context, credentialsFile string) (PushService, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}
	return &pushService{client: client}, nil
}

func (s *pushService) SendSettlementCompleted(ctx context.Context, deviceToken string, res *domain.SettlementResult) error {
	msg := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: "Return settled",
			Body:  fmt.Sprintf("Your borrow #%d settled as %s", res.Transaction.ID, res.Outcome),
		},
		Data: map[string]string{
			"type":      "SETTLEMENT_COMPLETED",
			"borrow_id": fmt.Sprintf("%d", res.Transaction.ID),
			"outcome":   string(res.Outcome),
		},
	}
	if _, err := s.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	return nil
}
