package service

import (
	"context"

	"gary-picks-engine/internal/api/dto"
	"gary-picks-engine/internal/api/repository"
	"gary-picks-engine/internal/entity"
	"gary-picks-engine/pkg/logger"
)

// StatsService defines the interface for user record and leaderboard reads.
type StatsService interface {
	GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
	GetLeaderboard(ctx context.Context, limit int) ([]*dto.UserStatsResponse, error)
}

// NewStatsService creates a new stats service.
func NewStatsService(statsRepo repository.UserStatsRepository, logger *logger.Logger) StatsService {
	return &statsService{
		statsRepo: statsRepo,
		logger:    logger,
	}
}

type statsService struct {
	statsRepo repository.UserStatsRepository
	logger    *logger.Logger
}

// GetUserStats retrieves a user's aggregate record. First access creates the
// default row with the starting bankroll.
func (s *statsService) GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	stats, err := s.statsRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get user stats", logger.ErrorField(err), logger.StringField("user_id", userID))
		return nil, err
	}
	return mapToUserStatsResponse(stats), nil
}

// GetLeaderboard retrieves the top users by bankroll.
func (s *statsService) GetLeaderboard(ctx context.Context, limit int) ([]*dto.UserStatsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	stats, err := s.statsRepo.FindTop(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to get leaderboard", logger.ErrorField(err))
		return nil, err
	}

	responses := make([]*dto.UserStatsResponse, 0, len(stats))
	for i := range stats {
		responses = append(responses, mapToUserStatsResponse(&stats[i]))
	}
	return responses, nil
}

// mapToUserStatsResponse maps an entity.UserStats to its DTO. Win rate counts
// pushes as no-contests.
func mapToUserStatsResponse(stats *entity.UserStats) *dto.UserStatsResponse {
	resp := &dto.UserStatsResponse{
		UserID:         stats.UserID,
		TotalDecisions: stats.TotalDecisions,
		WinCount:       stats.WinCount,
		LossCount:      stats.LossCount,
		PushCount:      stats.PushCount,
		CurrentStreak:  stats.CurrentStreak,
		Bankroll:       stats.Bankroll,
	}
	if decided := stats.WinCount + stats.LossCount; decided > 0 {
		resp.WinRate = float64(stats.WinCount) / float64(decided)
	}
	return resp
}
