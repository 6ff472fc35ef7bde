package repository

import (
	"context"
	"time"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PickRepository defines the write-side pick operations used by the worker.
type PickRepository interface {
	CreateIgnoreConflict(ctx context.Context, pick *entity.Pick) (bool, error)
	FindPendingStartedBefore(ctx context.Context, t time.Time) ([]entity.Pick, error)
	CountForWindow(ctx context.Context, sport string, start, end time.Time) (int64, error)
	Update(ctx context.Context, pick *entity.Pick) error
}

// NewPickRepository creates a new GORM-based pick repository.
func NewPickRepository(db *gorm.DB) PickRepository {
	return &pickRepository{db: db}
}

type pickRepository struct {
	db *gorm.DB
}

// CreateIgnoreConflict inserts a pick unless one already exists for the same
// event and bet type. Returns whether a row was actually written.
func (r *pickRepository) CreateIgnoreConflict(ctx context.Context, pick *entity.Pick) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "bet_type"}},
		DoNothing: true,
	}).Create(pick)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// FindPendingStartedBefore returns unsettled picks whose game has started.
func (r *pickRepository) FindPendingStartedBefore(ctx context.Context, t time.Time) ([]entity.Pick, error) {
	var picks []entity.Pick
	err := r.db.WithContext(ctx).
		Where("status = ? AND game_time < ?", entity.PickStatusPending, t).
		Find(&picks).Error
	if err != nil {
		return nil, err
	}
	return picks, nil
}

// CountForWindow counts picks generated for a sport in a time window.
func (r *pickRepository) CountForWindow(ctx context.Context, sport string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Pick{}).
		Where("sport = ? AND created_at >= ? AND created_at < ?", sport, start, end).
		Count(&count).Error
	return count, err
}

// Update persists changes to a pick.
func (r *pickRepository) Update(ctx context.Context, pick *entity.Pick) error {
	return r.db.WithContext(ctx).Save(pick).Error
}
