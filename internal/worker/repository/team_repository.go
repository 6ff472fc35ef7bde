package repository

import (
	"context"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// TeamRepository defines the interface for tracked team data operations.
type TeamRepository interface {
	FindAll(ctx context.Context) ([]entity.Team, error)
	FindBySport(ctx context.Context, sport string) ([]entity.Team, error)
}

// NewTeamRepository creates a new GORM-based team repository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

type teamRepository struct {
	db *gorm.DB
}

// FindAll returns every tracked team.
func (r *teamRepository) FindAll(ctx context.Context) ([]entity.Team, error) {
	var teams []entity.Team
	if err := r.db.WithContext(ctx).Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// FindBySport returns the tracked teams for one sport.
func (r *teamRepository) FindBySport(ctx context.Context, sport string) ([]entity.Team, error) {
	var teams []entity.Team
	if err := r.db.WithContext(ctx).Where("sport = ?", sport).Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}
