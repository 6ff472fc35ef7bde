package service

import (
	"context"
	"testing"
	"time"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePickQueryRepo struct {
	picks      []entity.Pick
	props      map[uint]*entity.PropPick
	lastStatus entity.PickStatus
	lastLimit  int
}

func (f *fakePickQueryRepo) FindByID(ctx context.Context, id uint) (*entity.Pick, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePickQueryRepo) FindByDate(ctx context.Context, from, to time.Time, sport string) ([]entity.Pick, error) {
	return f.picks, nil
}

func (f *fakePickQueryRepo) FindByStatus(ctx context.Context, status entity.PickStatus, limit int) ([]entity.Pick, error) {
	f.lastStatus = status
	f.lastLimit = limit
	var out []entity.Pick
	for _, p := range f.picks {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePickQueryRepo) FindPropsByDate(ctx context.Context, from, to time.Time, sport string) ([]entity.PropPick, error) {
	return nil, nil
}

func (f *fakePickQueryRepo) FindPropByID(ctx context.Context, id uint) (*entity.PropPick, error) {
	prop, ok := f.props[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return prop, nil
}

func newTestPickService(t *testing.T, repo *fakePickQueryRepo) PickService {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewPickService(repo, log)
}

func TestGetPicksByStatus(t *testing.T) {
	repo := &fakePickQueryRepo{picks: []entity.Pick{
		{ID: 1, Sport: "NBA", PickTeam: "Boston Celtics", Status: entity.PickStatusWon},
		{ID: 2, Sport: "NBA", PickTeam: "Miami Heat", Status: entity.PickStatusPending},
		{ID: 3, Sport: "NBA", PickTeam: "Denver Nuggets", Status: entity.PickStatusWon},
	}}
	svc := newTestPickService(t, repo)

	resp, err := svc.GetPicksByStatus(context.Background(), "won", 10)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, entity.PickStatusWon, repo.lastStatus)
	assert.Equal(t, 10, repo.lastLimit)
	for _, pick := range resp {
		assert.Equal(t, string(entity.PickStatusWon), pick.Status)
	}
}

func TestGetPicksByStatusClampsLimit(t *testing.T) {
	repo := &fakePickQueryRepo{}
	svc := newTestPickService(t, repo)

	_, err := svc.GetPicksByStatus(context.Background(), "pending", 0)
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastLimit)

	_, err = svc.GetPicksByStatus(context.Background(), "pending", 1000)
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastLimit)
}

func TestGetPicksByStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTestPickService(t, &fakePickQueryRepo{})

	_, err := svc.GetPicksByStatus(context.Background(), "graded", 10)
	assert.ErrorIs(t, err, ErrInvalidPickStatus)
}

func TestGetPropPickByID(t *testing.T) {
	repo := &fakePickQueryRepo{props: map[uint]*entity.PropPick{
		4: {
			ID:         4,
			Sport:      "NBA",
			PlayerName: "Jayson Tatum",
			StatType:   "points",
			Line:       28.5,
			Side:       entity.PropSideOver,
			Status:     entity.PickStatusPending,
		},
	}}
	svc := newTestPickService(t, repo)

	resp, err := svc.GetPropPickByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Jayson Tatum", resp.PlayerName)
	assert.Equal(t, string(entity.PropSideOver), resp.Side)

	_, err = svc.GetPropPickByID(context.Background(), 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
