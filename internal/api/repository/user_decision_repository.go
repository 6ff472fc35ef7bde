package repository

import (
	"context"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// UserDecisionRepository defines the interface for user decision data operations.
type UserDecisionRepository interface {
	Create(ctx context.Context, decision *entity.UserDecision) error
	FindByUser(ctx context.Context, userID string, limit int) ([]entity.UserDecision, error)
	FindByUserAndPick(ctx context.Context, userID string, pickID uint) (*entity.UserDecision, error)
}

// NewUserDecisionRepository creates a new GORM-based user decision repository.
func NewUserDecisionRepository(db *gorm.DB) UserDecisionRepository {
	return &userDecisionRepository{db: db}
}

type userDecisionRepository struct {
	db *gorm.DB
}

// Create records a new decision. The unique index on user+pick rejects
// duplicates.
func (r *userDecisionRepository) Create(ctx context.Context, decision *entity.UserDecision) error {
	return r.db.WithContext(ctx).Create(decision).Error
}

// FindByUser retrieves a user's decisions, newest first, with the pick loaded.
func (r *userDecisionRepository) FindByUser(ctx context.Context, userID string, limit int) ([]entity.UserDecision, error) {
	var decisions []entity.UserDecision
	q := r.db.WithContext(ctx).Preload("Pick").Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&decisions).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}

// FindByUserAndPick retrieves a single decision for a user on a pick.
func (r *userDecisionRepository) FindByUserAndPick(ctx context.Context, userID string, pickID uint) (*entity.UserDecision, error) {
	var decision entity.UserDecision
	if err := r.db.WithContext(ctx).Where("user_id = ? AND pick_id = ?", userID, pickID).First(&decision).Error; err != nil {
		return nil, err
	}
	return &decision, nil
}
