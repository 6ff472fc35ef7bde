package service

import (
	"context"
	"testing"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserStatsRepo struct {
	stats     map[string]*entity.UserStats
	lastLimit int
}

func (f *fakeUserStatsRepo) FindByUser(ctx context.Context, userID string) (*entity.UserStats, error) {
	stats, ok := f.stats[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return stats, nil
}

func (f *fakeUserStatsRepo) FindTop(ctx context.Context, limit int) ([]entity.UserStats, error) {
	f.lastLimit = limit
	var out []entity.UserStats
	for _, s := range f.stats {
		out = append(out, *s)
	}
	return out, nil
}

func newTestStatsService(t *testing.T, repo *fakeUserStatsRepo) StatsService {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewStatsService(repo, log)
}

func TestGetUserStatsWinRate(t *testing.T) {
	tests := []struct {
		name        string
		stats       entity.UserStats
		wantWinRate float64
	}{
		{
			name:        "pushes excluded from win rate",
			stats:       entity.UserStats{UserID: "user-1", TotalDecisions: 10, WinCount: 6, LossCount: 2, PushCount: 2, Bankroll: 1240},
			wantWinRate: 0.75,
		},
		{
			name:        "no decided games",
			stats:       entity.UserStats{UserID: "user-1", TotalDecisions: 1, PushCount: 1, Bankroll: 1000},
			wantWinRate: 0,
		},
		{
			name:        "all losses",
			stats:       entity.UserStats{UserID: "user-1", TotalDecisions: 3, LossCount: 3, Bankroll: 729},
			wantWinRate: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := tt.stats
			repo := &fakeUserStatsRepo{stats: map[string]*entity.UserStats{"user-1": &stats}}
			svc := newTestStatsService(t, repo)

			resp, err := svc.GetUserStats(context.Background(), "user-1")
			require.NoError(t, err)
			assert.InDelta(t, tt.wantWinRate, resp.WinRate, 1e-9)
			assert.Equal(t, stats.Bankroll, resp.Bankroll)
		})
	}
}

func TestGetLeaderboardClampsLimit(t *testing.T) {
	repo := &fakeUserStatsRepo{stats: map[string]*entity.UserStats{}}
	svc := newTestStatsService(t, repo)

	_, err := svc.GetLeaderboard(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastLimit)

	_, err = svc.GetLeaderboard(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastLimit)

	_, err = svc.GetLeaderboard(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastLimit)
}
