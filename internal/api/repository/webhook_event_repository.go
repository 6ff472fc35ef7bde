package repository

import (
	"context"
	"errors"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// ErrDuplicateEvent is returned when a webhook event id was already stored.
var ErrDuplicateEvent = errors.New("webhook event already recorded")

// WebhookEventRepository defines the interface for webhook event data operations.
type WebhookEventRepository interface {
	Create(ctx context.Context, event *entity.WebhookEvent) error
	MarkProcessed(ctx context.Context, event *entity.WebhookEvent) error
}

// NewWebhookEventRepository creates a new GORM-based webhook event repository.
func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

type webhookEventRepository struct {
	db *gorm.DB
}

// Create persists a webhook event; redelivered event ids map to
// ErrDuplicateEvent via the unique index.
func (r *webhookEventRepository) Create(ctx context.Context, event *entity.WebhookEvent) error {
	err := r.db.WithContext(ctx).Create(event).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEvent
	}
	return err
}

// MarkProcessed updates the processing outcome of an event.
func (r *webhookEventRepository) MarkProcessed(ctx context.Context, event *entity.WebhookEvent) error {
	return r.db.WithContext(ctx).Model(event).
		Select("processed", "processed_at", "error_message").
		Updates(event).Error
}
