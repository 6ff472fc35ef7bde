package repository

import (
	"context"
	"fmt"
	"strings"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamNewsRepository defines the interface for scraped team news operations.
type TeamNewsRepository interface {
	CreateIgnoreConflict(ctx context.Context, news *entity.TeamNews) error
	FindExistingHashes(ctx context.Context, hashes []string) (map[string]bool, error)
	FindRankedNews(ctx context.Context, team string, maxNews int, maxNewsAgeInDays int) ([]entity.TeamNews, error)
}

// NewTeamNewsRepository creates a new instance of TeamNewsRepository.
func NewTeamNewsRepository(db *gorm.DB) TeamNewsRepository {
	return &teamNewsRepository{db: db}
}

type teamNewsRepository struct {
	db *gorm.DB
}

// CreateIgnoreConflict saves an article and its team mentions, skipping
// articles already stored under the same hash.
func (r *teamNewsRepository) CreateIgnoreConflict(ctx context.Context, news *entity.TeamNews) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mentions := news.NewsMentions
		news.NewsMentions = nil
		txInner := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hash_identifier"}},
			DoNothing: true,
		}).Create(news)

		if txInner.Error != nil {
			return txInner.Error
		}

		if txInner.RowsAffected == 0 {
			return nil
		}

		if len(mentions) == 0 {
			return nil
		}

		for i := range mentions {
			mentions[i].TeamNewsID = news.ID
		}

		if err := tx.Create(&mentions).Error; err != nil {
			return fmt.Errorf("insert news_mentions error: %w", err)
		}

		return nil
	})
}

// FindExistingHashes returns which of the given article hashes are already
// stored.
func (r *teamNewsRepository) FindExistingHashes(ctx context.Context, hashes []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(hashes))
	if len(hashes) == 0 {
		return existing, nil
	}

	var found []string
	err := r.db.WithContext(ctx).Model(&entity.TeamNews{}).
		Where("hash_identifier IN ?", hashes).
		Pluck("hash_identifier", &found).Error
	if err != nil {
		return nil, err
	}

	for _, hash := range found {
		existing[hash] = true
	}
	return existing, nil
}

// FindRankedNews returns the most relevant recent articles mentioning a team,
// scored on mention confidence, article impact, and recency.
func (r *teamNewsRepository) FindRankedNews(ctx context.Context, team string, maxNews int, maxNewsAgeInDays int) ([]entity.TeamNews, error) {
	var (
		qBuilder strings.Builder
		news     []entity.TeamNews
	)

	qBuilder.WriteString(fmt.Sprintf(`
	SELECT
		tn.id,
		tn.title,
		tn.link,
		tn.published_at,
		tn.summary,
		tn.source,
		nm.sentiment,
		nm.impact,
		nm.confidence_score,
		nm.reason,
		tn.impact_score,
		(0.5 * nm.confidence_score + 0.3 * tn.impact_score + 0.2 * GREATEST(0, 1 - (EXTRACT(EPOCH FROM (NOW() - tn.published_at)) / 86400) / %.2f)) AS final_score
	FROM team_news AS tn
	JOIN news_mentions AS nm ON nm.team_news_id = tn.id
	WHERE nm.team = ?
	AND tn.published_at >= NOW() - INTERVAL '%d days'
	ORDER BY final_score DESC
	LIMIT ?
`, float64(maxNewsAgeInDays), maxNewsAgeInDays))

	err := r.db.WithContext(ctx).Raw(qBuilder.String(), team, maxNews).Scan(&news).Error
	if err != nil {
		return nil, err
	}

	return news, nil
}
