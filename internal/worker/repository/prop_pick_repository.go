package repository

import (
	"context"
	"time"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PropPickRepository defines the write-side prop pick operations used by the
// worker.
type PropPickRepository interface {
	CreateIgnoreConflict(ctx context.Context, propPick *entity.PropPick) (bool, error)
	FindByID(ctx context.Context, id uint) (*entity.PropPick, error)
	FindPendingStartedBefore(ctx context.Context, t time.Time) ([]entity.PropPick, error)
	Update(ctx context.Context, propPick *entity.PropPick) error
}

// NewPropPickRepository creates a new GORM-based prop pick repository.
func NewPropPickRepository(db *gorm.DB) PropPickRepository {
	return &propPickRepository{db: db}
}

type propPickRepository struct {
	db *gorm.DB
}

// CreateIgnoreConflict inserts a prop pick unless one already exists for the
// same event, player, and stat type. Returns whether a row was written.
func (r *propPickRepository) CreateIgnoreConflict(ctx context.Context, propPick *entity.PropPick) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "player_name"}, {Name: "stat_type"}},
		DoNothing: true,
	}).Create(propPick)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// FindByID retrieves a prop pick by its ID.
func (r *propPickRepository) FindByID(ctx context.Context, id uint) (*entity.PropPick, error) {
	var propPick entity.PropPick
	if err := r.db.WithContext(ctx).First(&propPick, id).Error; err != nil {
		return nil, err
	}
	return &propPick, nil
}

// FindPendingStartedBefore returns unsettled prop picks whose game has
// started.
func (r *propPickRepository) FindPendingStartedBefore(ctx context.Context, t time.Time) ([]entity.PropPick, error) {
	var propPicks []entity.PropPick
	err := r.db.WithContext(ctx).
		Where("status = ? AND game_time < ?", entity.PickStatusPending, t).
		Find(&propPicks).Error
	if err != nil {
		return nil, err
	}
	return propPicks, nil
}

// Update persists changes to a prop pick.
func (r *propPickRepository) Update(ctx context.Context, propPick *entity.PropPick) error {
	return r.db.WithContext(ctx).Save(propPick).Error
}
