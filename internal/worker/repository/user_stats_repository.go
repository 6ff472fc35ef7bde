package repository

import (
	"context"
	"errors"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// UserStatsRepository defines the settlement-side stats operations.
type UserStatsRepository interface {
	FindOrCreate(ctx context.Context, userID string) (*entity.UserStats, error)
	Update(ctx context.Context, stats *entity.UserStats) error
}

// NewUserStatsRepository creates a new GORM-based user stats repository.
func NewUserStatsRepository(db *gorm.DB) UserStatsRepository {
	return &userStatsRepository{db: db}
}

type userStatsRepository struct {
	db *gorm.DB
}

// FindOrCreate returns the stats row for a user, creating the default row on
// first settlement.
func (r *userStatsRepository) FindOrCreate(ctx context.Context, userID string) (*entity.UserStats, error) {
	var stats entity.UserStats
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if err == nil {
		return &stats, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stats = entity.UserStats{UserID: userID, Bankroll: 1000}
	if err := r.db.WithContext(ctx).Create(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// Update persists changes to a stats row.
func (r *userStatsRepository) Update(ctx context.Context, stats *entity.UserStats) error {
	return r.db.WithContext(ctx).Save(stats).Error
}
