package repository

import (
	"context"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// UserStatsRepository defines the interface for user stats data operations.
type UserStatsRepository interface {
	FindByUser(ctx context.Context, userID string) (*entity.UserStats, error)
	FindTop(ctx context.Context, limit int) ([]entity.UserStats, error)
}

// NewUserStatsRepository creates a new GORM-based user stats repository.
func NewUserStatsRepository(db *gorm.DB) UserStatsRepository {
	return &userStatsRepository{db: db}
}

type userStatsRepository struct {
	db *gorm.DB
}

// FindByUser retrieves a user's aggregate record, creating the default row on
// first access.
func (r *userStatsRepository) FindByUser(ctx context.Context, userID string) (*entity.UserStats, error) {
	var stats entity.UserStats
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if err == gorm.ErrRecordNotFound {
		stats = entity.UserStats{UserID: userID, Bankroll: 1000}
		if err := r.db.WithContext(ctx).Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// FindTop retrieves the leaderboard ordered by bankroll.
func (r *userStatsRepository) FindTop(ctx context.Context, limit int) ([]entity.UserStats, error) {
	var stats []entity.UserStats
	if err := r.db.WithContext(ctx).Order("bankroll desc").Limit(limit).Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
