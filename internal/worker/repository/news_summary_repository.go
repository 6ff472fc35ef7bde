package repository

import (
	"context"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewsSummaryRepository defines the interface for team news summaries.
type NewsSummaryRepository interface {
	CreateIgnoreConflict(ctx context.Context, summary *entity.NewsSummary) error
	FindLatestForTeams(ctx context.Context, teams []string) ([]entity.NewsSummary, error)
}

// NewNewsSummaryRepository creates a new instance of NewsSummaryRepository.
func NewNewsSummaryRepository(db *gorm.DB) NewsSummaryRepository {
	return &newsSummaryRepository{db: db}
}

type newsSummaryRepository struct {
	db *gorm.DB
}

// CreateIgnoreConflict saves a summary, skipping ones already generated over
// the same set of articles.
func (r *newsSummaryRepository) CreateIgnoreConflict(ctx context.Context, summary *entity.NewsSummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hash_identifier"}},
		DoNothing: true,
	}).Create(summary).Error
}

// FindLatestForTeams returns the newest summary per team for the given teams.
func (r *newsSummaryRepository) FindLatestForTeams(ctx context.Context, teams []string) ([]entity.NewsSummary, error) {
	if len(teams) == 0 {
		return nil, nil
	}

	var summaries []entity.NewsSummary
	err := r.db.WithContext(ctx).Raw(`
	SELECT DISTINCT ON (team) *
	FROM news_summaries
	WHERE team IN ?
	ORDER BY team, created_at DESC
`, teams).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}

	return summaries, nil
}
