package repository

import (
	"context"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// UserDecisionRepository defines the settlement-side decision operations.
type UserDecisionRepository interface {
	FindPendingByPickID(ctx context.Context, pickID uint) ([]entity.UserDecision, error)
	Update(ctx context.Context, decision *entity.UserDecision) error
}

// NewUserDecisionRepository creates a new GORM-based user decision repository.
func NewUserDecisionRepository(db *gorm.DB) UserDecisionRepository {
	return &userDecisionRepository{db: db}
}

type userDecisionRepository struct {
	db *gorm.DB
}

// FindPendingByPickID returns all unsettled decisions on a pick.
func (r *userDecisionRepository) FindPendingByPickID(ctx context.Context, pickID uint) ([]entity.UserDecision, error) {
	var decisions []entity.UserDecision
	err := r.db.WithContext(ctx).
		Where("pick_id = ? AND outcome = ?", pickID, entity.PickStatusPending).
		Find(&decisions).Error
	if err != nil {
		return nil, err
	}
	return decisions, nil
}

// Update persists changes to a decision.
func (r *userDecisionRepository) Update(ctx context.Context, decision *entity.UserDecision) error {
	return r.db.WithContext(ctx).Save(decision).Error
}
