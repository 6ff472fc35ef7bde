package strategy

import (
	"context"
	"testing"
	"time"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettleDecisionRepo struct {
	updated []*entity.UserDecision
}

func (f *fakeSettleDecisionRepo) FindPendingByPickID(ctx context.Context, pickID uint) ([]entity.UserDecision, error) {
	return nil, nil
}

func (f *fakeSettleDecisionRepo) Update(ctx context.Context, decision *entity.UserDecision) error {
	f.updated = append(f.updated, decision)
	return nil
}

type fakeSettleStatsRepo struct {
	stats map[string]*entity.UserStats
}

func (f *fakeSettleStatsRepo) FindOrCreate(ctx context.Context, userID string) (*entity.UserStats, error) {
	if s, ok := f.stats[userID]; ok {
		return s, nil
	}
	s := &entity.UserStats{UserID: userID, Bankroll: 1000}
	f.stats[userID] = s
	return s, nil
}

func (f *fakeSettleStatsRepo) Update(ctx context.Context, stats *entity.UserStats) error {
	f.stats[stats.UserID] = stats
	return nil
}

type fakeSettleWagerRepo struct {
	wagers []*entity.Wager
}

func (f *fakeSettleWagerRepo) Create(ctx context.Context, wager *entity.Wager) error {
	f.wagers = append(f.wagers, wager)
	return nil
}

type fakeSettleNotificationRepo struct {
	notifications []*entity.Notification
}

func (f *fakeSettleNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	f.notifications = append(f.notifications, notification)
	return nil
}

func newSettleStrategy(t *testing.T, statsRepo *fakeSettleStatsRepo, wagerRepo *fakeSettleWagerRepo) *ResultsCheckStrategy {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return &ResultsCheckStrategy{
		logger:           log,
		decisionRepo:     &fakeSettleDecisionRepo{},
		statsRepo:        statsRepo,
		wagerRepo:        wagerRepo,
		notificationRepo: &fakeSettleNotificationRepo{},
	}
}

func settledPick(status entity.PickStatus) *entity.Pick {
	return &entity.Pick{
		ID:           7,
		Sport:        "NBA",
		HomeTeam:     "Boston Celtics",
		AwayTeam:     "Miami Heat",
		PickTeam:     "Boston Celtics",
		BetType:      entity.BetTypeMoneyline,
		OddsAmerican: 100,
		Status:       status,
	}
}

// The stored wager amount must be the stake the payout used, computed from
// the bankroll as it stood before the outcome was applied.
func TestSettleDecisionRecordsPreSettlementStake(t *testing.T) {
	tests := []struct {
		name         string
		pickStatus   entity.PickStatus
		decision     entity.DecisionType
		wantAmount   float64
		wantProfit   float64
		wantBankroll float64
	}{
		{
			name:         "lost bet stakes tenth of prior bankroll",
			pickStatus:   entity.PickStatusLost,
			decision:     entity.DecisionBet,
			wantAmount:   100,
			wantProfit:   0,
			wantBankroll: 900,
		},
		{
			name:         "won bet pays even odds on the same stake",
			pickStatus:   entity.PickStatusWon,
			decision:     entity.DecisionBet,
			wantAmount:   100,
			wantProfit:   100,
			wantBankroll: 1100,
		},
		{
			name:         "fade inverts the result but not the stake",
			pickStatus:   entity.PickStatusWon,
			decision:     entity.DecisionFade,
			wantAmount:   100,
			wantProfit:   0,
			wantBankroll: 900,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statsRepo := &fakeSettleStatsRepo{stats: map[string]*entity.UserStats{
				"user-1": {UserID: "user-1", Bankroll: 1000},
			}}
			wagerRepo := &fakeSettleWagerRepo{}
			s := newSettleStrategy(t, statsRepo, wagerRepo)

			decision := &entity.UserDecision{ID: 1, UserID: "user-1", PickID: 7, Decision: tt.decision}
			err := s.settleDecision(context.Background(), settledPick(tt.pickStatus), decision, time.Now())
			require.NoError(t, err)

			require.Len(t, wagerRepo.wagers, 1)
			wager := wagerRepo.wagers[0]
			assert.InDelta(t, tt.wantAmount, wager.Amount, 1e-9)
			assert.InDelta(t, tt.wantProfit, wager.Profit, 1e-9)
			assert.InDelta(t, tt.wantBankroll, statsRepo.stats["user-1"].Bankroll, 1e-9)
		})
	}
}

func TestSettleDecisionPostponedSkipsBankroll(t *testing.T) {
	statsRepo := &fakeSettleStatsRepo{stats: map[string]*entity.UserStats{
		"user-1": {UserID: "user-1", Bankroll: 1000},
	}}
	wagerRepo := &fakeSettleWagerRepo{}
	s := newSettleStrategy(t, statsRepo, wagerRepo)

	decision := &entity.UserDecision{ID: 1, UserID: "user-1", PickID: 7, Decision: entity.DecisionBet}
	err := s.settleDecision(context.Background(), settledPick(entity.PickStatusPostponed), decision, time.Now())
	require.NoError(t, err)

	assert.Empty(t, wagerRepo.wagers)
	assert.InDelta(t, 1000, statsRepo.stats["user-1"].Bankroll, 1e-9)
}
