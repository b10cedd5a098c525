package service

import (
	"context"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, recipientID int64, recipientType domain.WalletType, page, pageSize int32) ([]domain.Notification, int32, error) {
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, recipientID, recipientType, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, recipientID, notificationID int64) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, recipientID)
}
