package repository

import (
	"context"
	"errors"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// SubscriptionRepository defines the interface for subscription data operations.
type SubscriptionRepository interface {
	FindByUser(ctx context.Context, userID string) (*entity.Subscription, error)
	FindByCustomerID(ctx context.Context, customerID string) (*entity.Subscription, error)
	Upsert(ctx context.Context, sub *entity.Subscription) error
}

// NewSubscriptionRepository creates a new GORM-based subscription repository.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

type subscriptionRepository struct {
	db *gorm.DB
}

// FindByUser retrieves a user's subscription.
func (r *subscriptionRepository) FindByUser(ctx context.Context, userID string) (*entity.Subscription, error) {
	var sub entity.Subscription
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindByCustomerID retrieves a subscription by the payment provider's
// customer id.
func (r *subscriptionRepository) FindByCustomerID(ctx context.Context, customerID string) (*entity.Subscription, error) {
	var sub entity.Subscription
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Upsert saves the subscription state keyed by user id.
func (r *subscriptionRepository) Upsert(ctx context.Context, sub *entity.Subscription) error {
	var existing entity.Subscription
	err := r.db.WithContext(ctx).Where("user_id = ?", sub.UserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(sub).Error
	}
	if err != nil {
		return err
	}
	sub.ID = existing.ID
	return r.db.WithContext(ctx).Save(sub).Error
}
