package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gary-picks-engine/internal/api/dto"
	"gary-picks-engine/internal/entity"
	"gary-picks-engine/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDecisionRepo struct {
	decisions map[string]*entity.UserDecision // keyed by user|pick
}

func newFakeDecisionRepo() *fakeDecisionRepo {
	return &fakeDecisionRepo{decisions: make(map[string]*entity.UserDecision)}
}

func decisionKey(userID string, pickID uint) string {
	return fmt.Sprintf("%s|%d", userID, pickID)
}

func (f *fakeDecisionRepo) Create(ctx context.Context, decision *entity.UserDecision) error {
	key := decisionKey(decision.UserID, decision.PickID)
	if _, ok := f.decisions[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	decision.ID = uint(len(f.decisions) + 1)
	f.decisions[key] = decision
	return nil
}

func (f *fakeDecisionRepo) FindByUser(ctx context.Context, userID string, limit int) ([]entity.UserDecision, error) {
	var out []entity.UserDecision
	for _, d := range f.decisions {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDecisionRepo) FindByUserAndPick(ctx context.Context, userID string, pickID uint) (*entity.UserDecision, error) {
	d, ok := f.decisions[decisionKey(userID, pickID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

type fakeAPIPickRepo struct {
	picks map[uint]*entity.Pick
}

func (f *fakeAPIPickRepo) FindByID(ctx context.Context, id uint) (*entity.Pick, error) {
	pick, ok := f.picks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pick, nil
}

func (f *fakeAPIPickRepo) FindByDate(ctx context.Context, from, to time.Time, sport string) ([]entity.Pick, error) {
	return nil, nil
}

func (f *fakeAPIPickRepo) FindByStatus(ctx context.Context, status entity.PickStatus, limit int) ([]entity.Pick, error) {
	return nil, nil
}

func (f *fakeAPIPickRepo) FindPropsByDate(ctx context.Context, from, to time.Time, sport string) ([]entity.PropPick, error) {
	return nil, nil
}

func (f *fakeAPIPickRepo) FindPropByID(ctx context.Context, id uint) (*entity.PropPick, error) {
	return nil, gorm.ErrRecordNotFound
}

func newTestDecisionService(t *testing.T, decisionRepo *fakeDecisionRepo, pickRepo *fakeAPIPickRepo) DecisionService {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewDecisionService(decisionRepo, pickRepo, log)
}

func upcomingPick(id uint) *entity.Pick {
	return &entity.Pick{
		ID:           id,
		Sport:        "NBA",
		HomeTeam:     "Boston Celtics",
		AwayTeam:     "Miami Heat",
		PickTeam:     "Boston Celtics",
		BetType:      entity.BetTypeMoneyline,
		OddsAmerican: -150,
		Status:       entity.PickStatusPending,
		GameTime:     time.Now().Add(3 * time.Hour),
	}
}

func TestCreateDecision(t *testing.T) {
	decisionRepo := newFakeDecisionRepo()
	pickRepo := &fakeAPIPickRepo{picks: map[uint]*entity.Pick{1: upcomingPick(1)}}
	svc := newTestDecisionService(t, decisionRepo, pickRepo)

	resp, err := svc.CreateDecision(context.Background(), &dto.CreateDecisionRequest{
		UserID:   "user-1",
		PickID:   1,
		Decision: "fade",
	})

	require.NoError(t, err)
	assert.Equal(t, "fade", resp.Decision)
	assert.Equal(t, string(entity.PickStatusPending), resp.Outcome)
	require.NotNil(t, resp.Pick)
	assert.Equal(t, "Boston Celtics", resp.Pick.PickTeam)
}

func TestCreateDecisionRejectsInvalidValue(t *testing.T) {
	svc := newTestDecisionService(t, newFakeDecisionRepo(), &fakeAPIPickRepo{picks: map[uint]*entity.Pick{}})

	_, err := svc.CreateDecision(context.Background(), &dto.CreateDecisionRequest{
		UserID:   "user-1",
		PickID:   1,
		Decision: "hold",
	})

	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestCreateDecisionRejectsStartedGame(t *testing.T) {
	pick := upcomingPick(1)
	pick.GameTime = time.Now().Add(-30 * time.Minute)
	svc := newTestDecisionService(t, newFakeDecisionRepo(), &fakeAPIPickRepo{picks: map[uint]*entity.Pick{1: pick}})

	_, err := svc.CreateDecision(context.Background(), &dto.CreateDecisionRequest{
		UserID:   "user-1",
		PickID:   1,
		Decision: "bet",
	})

	assert.ErrorIs(t, err, ErrPickLocked)
}

func TestCreateDecisionRejectsDuplicate(t *testing.T) {
	decisionRepo := newFakeDecisionRepo()
	pickRepo := &fakeAPIPickRepo{picks: map[uint]*entity.Pick{1: upcomingPick(1)}}
	svc := newTestDecisionService(t, decisionRepo, pickRepo)

	req := &dto.CreateDecisionRequest{UserID: "user-1", PickID: 1, Decision: "bet"}

	_, err := svc.CreateDecision(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateDecision(context.Background(), req)
	assert.ErrorIs(t, err, ErrDecisionExists)
}
