package repository

import (
	"context"
	"time"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// PickRepository defines the read/query interface for picks served by the API.
type PickRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.Pick, error)
	FindByDate(ctx context.Context, from, to time.Time, sport string) ([]entity.Pick, error)
	FindByStatus(ctx context.Context, status entity.PickStatus, limit int) ([]entity.Pick, error)
	FindPropsByDate(ctx context.Context, from, to time.Time, sport string) ([]entity.PropPick, error)
	FindPropByID(ctx context.Context, id uint) (*entity.PropPick, error)
}

// NewPickRepository creates a new GORM-based pick repository.
func NewPickRepository(db *gorm.DB) PickRepository {
	return &pickRepository{db: db}
}

type pickRepository struct {
	db *gorm.DB
}

// FindByID retrieves a pick by its ID.
func (r *pickRepository) FindByID(ctx context.Context, id uint) (*entity.Pick, error) {
	var pick entity.Pick
	if err := r.db.WithContext(ctx).First(&pick, id).Error; err != nil {
		return nil, err
	}
	return &pick, nil
}

// FindByDate retrieves picks with game times inside [from, to), optionally
// filtered by sport.
func (r *pickRepository) FindByDate(ctx context.Context, from, to time.Time, sport string) ([]entity.Pick, error) {
	var picks []entity.Pick
	q := r.db.WithContext(ctx).Where("game_time >= ? AND game_time < ?", from, to)
	if sport != "" {
		q = q.Where("sport = ?", sport)
	}
	if err := q.Order("confidence_score desc").Find(&picks).Error; err != nil {
		return nil, err
	}
	return picks, nil
}

// FindByStatus retrieves picks in the given settlement state.
func (r *pickRepository) FindByStatus(ctx context.Context, status entity.PickStatus, limit int) ([]entity.Pick, error) {
	var picks []entity.Pick
	q := r.db.WithContext(ctx).Where("status = ?", status).Order("game_time asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&picks).Error; err != nil {
		return nil, err
	}
	return picks, nil
}

// FindPropsByDate retrieves prop picks with game times inside [from, to).
func (r *pickRepository) FindPropsByDate(ctx context.Context, from, to time.Time, sport string) ([]entity.PropPick, error) {
	var props []entity.PropPick
	q := r.db.WithContext(ctx).Where("game_time >= ? AND game_time < ?", from, to)
	if sport != "" {
		q = q.Where("sport = ?", sport)
	}
	if err := q.Order("confidence_score desc").Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

// FindPropByID retrieves a prop pick by its ID.
func (r *pickRepository) FindPropByID(ctx context.Context, id uint) (*entity.PropPick, error) {
	var prop entity.PropPick
	if err := r.db.WithContext(ctx).First(&prop, id).Error; err != nil {
		return nil, err
	}
	return &prop, nil
}
