package repository

import (
	"context"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// WagerRepository records bankroll plays at settlement time.
type WagerRepository interface {
	Create(ctx context.Context, wager *entity.Wager) error
}

// NewWagerRepository creates a new GORM-based wager repository.
func NewWagerRepository(db *gorm.DB) WagerRepository {
	return &wagerRepository{db: db}
}

type wagerRepository struct {
	db *gorm.DB
}

// Create saves a new wager.
func (r *wagerRepository) Create(ctx context.Context, wager *entity.Wager) error {
	return r.db.WithContext(ctx).Create(wager).Error
}
