package repository

import (
	"context"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	FindByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, userID string, id uint) error
}

// NewNotificationRepository creates a new GORM-based notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

type notificationRepository struct {
	db *gorm.DB
}

// FindByUser retrieves a user's notifications, newest first.
func (r *notificationRepository) FindByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc")
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags a single notification as read.
func (r *notificationRepository) MarkRead(ctx context.Context, userID string, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
}
