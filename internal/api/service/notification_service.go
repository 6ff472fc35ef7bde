package service

import (
	"context"

	"gary-picks-engine/internal/api/repository"
	"gary-picks-engine/internal/entity"
	"gary-picks-engine/pkg/logger"
)

// NotificationService defines the interface for user notification reads.
type NotificationService interface {
	GetUserNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, userID string, id uint) error
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo repository.NotificationRepository, logger *logger.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           *logger.Logger
}

// GetUserNotifications retrieves a user's notifications, newest first.
func (s *notificationService) GetUserNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]entity.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	notifications, err := s.notificationRepo.FindByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		s.logger.Error("Failed to get notifications", logger.ErrorField(err), logger.StringField("user_id", userID))
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags one of the user's notifications as read.
func (s *notificationService) MarkRead(ctx context.Context, userID string, id uint) error {
	if err := s.notificationRepo.MarkRead(ctx, userID, id); err != nil {
		s.logger.Error("Failed to mark notification read", logger.ErrorField(err), logger.StringField("user_id", userID), logger.Field("id", id))
		return err
	}
	return nil
}
