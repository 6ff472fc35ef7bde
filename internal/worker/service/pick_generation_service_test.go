package service

import (
	"context"
	"testing"
	"time"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/config"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenOddsRepo struct {
	games []dto.GameOdds
	calls int
}

func (f *fakeGenOddsRepo) GetGameOdds(ctx context.Context, sport string) ([]dto.GameOdds, error) {
	f.calls++
	return f.games, nil
}

type fakeGenSummaryRepo struct{}

func (f *fakeGenSummaryRepo) CreateIgnoreConflict(ctx context.Context, summary *entity.NewsSummary) error {
	return nil
}

func (f *fakeGenSummaryRepo) FindLatestForTeams(ctx context.Context, teams []string) ([]entity.NewsSummary, error) {
	return nil, nil
}

type fakeGenPickRepo struct {
	existing int64
	created  []*entity.Pick
}

func (f *fakeGenPickRepo) CreateIgnoreConflict(ctx context.Context, pick *entity.Pick) (bool, error) {
	f.created = append(f.created, pick)
	return true, nil
}

func (f *fakeGenPickRepo) FindPendingStartedBefore(ctx context.Context, t time.Time) ([]entity.Pick, error) {
	return nil, nil
}

func (f *fakeGenPickRepo) CountForWindow(ctx context.Context, sport string, start, end time.Time) (int64, error) {
	return f.existing, nil
}

func (f *fakeGenPickRepo) Update(ctx context.Context, pick *entity.Pick) error {
	return nil
}

type fakeGenAIRepo struct {
	result *dto.PickGenerationResult
	calls  int
}

func (f *fakeGenAIRepo) GeneratePicks(ctx context.Context, sport string, games []dto.GameOdds, summaries []entity.NewsSummary, maxPicks int) (*dto.PickGenerationResult, error) {
	f.calls++
	return f.result, nil
}

func (f *fakeGenAIRepo) GeneratePropPicks(ctx context.Context, sport string, games []dto.GameOdds, summaries []entity.NewsSummary, maxPicks int) (*dto.PropGenerationResult, error) {
	return nil, nil
}

func (f *fakeGenAIRepo) AnalyzeNews(ctx context.Context, title, publishedDate, content string, teams []entity.Team) (*dto.NewsAnalysisResult, error) {
	return nil, nil
}

func (f *fakeGenAIRepo) GenerateNewsSummary(ctx context.Context, team string, newsItems []entity.TeamNews) (*dto.NewsSummaryResult, error) {
	return nil, nil
}

func (f *fakeGenAIRepo) ResolvePlayerStat(ctx context.Context, query dto.StatQuery) (*dto.StatAnswerResult, error) {
	return nil, nil
}

func newGenerationTestService(t *testing.T, oddsRepo *fakeGenOddsRepo, pickRepo *fakeGenPickRepo, aiRepo *fakeGenAIRepo) PickGenerationService {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewPickGenerationService(&config.Config{}, log, nil, oddsRepo, &fakeGenSummaryRepo{}, pickRepo, aiRepo, "openai", nil)
}

func boardGame() dto.GameOdds {
	return dto.GameOdds{
		EventID:  "evt-001",
		Sport:    "NBA",
		HomeTeam: "Boston Celtics",
		AwayTeam: "Miami Heat",
		GameTime: utils.TimeNowET().Add(5 * time.Hour),
		HomeML:   -150,
		AwayML:   130,
	}
}

func TestGenerateStoresPickFromBoard(t *testing.T) {
	oddsRepo := &fakeGenOddsRepo{games: []dto.GameOdds{boardGame()}}
	pickRepo := &fakeGenPickRepo{}
	aiRepo := &fakeGenAIRepo{result: &dto.PickGenerationResult{Picks: []dto.GeneratedPick{
		{EventID: "evt-001", PickTeam: "Boston Celtics", BetType: "moneyline", ConfidenceScore: 0.8, Rationale: "home edge"},
	}}}
	svc := newGenerationTestService(t, oddsRepo, pickRepo, aiRepo)

	err := svc.Generate(context.Background(), "NBA", "NBA", 3)
	require.NoError(t, err)
	require.Len(t, pickRepo.created, 1)
	assert.Equal(t, -150, pickRepo.created[0].OddsAmerican)
	assert.Equal(t, entity.PickStatusPending, pickRepo.created[0].Status)
}

// A retried task must not call the model again once the day's picks are in.
func TestGenerateSkipsWhenDailyBudgetUsed(t *testing.T) {
	oddsRepo := &fakeGenOddsRepo{games: []dto.GameOdds{boardGame()}}
	pickRepo := &fakeGenPickRepo{existing: 3}
	aiRepo := &fakeGenAIRepo{result: &dto.PickGenerationResult{}}
	svc := newGenerationTestService(t, oddsRepo, pickRepo, aiRepo)

	err := svc.Generate(context.Background(), "NBA", "NBA", 3)
	require.NoError(t, err)
	assert.Zero(t, oddsRepo.calls)
	assert.Zero(t, aiRepo.calls)
	assert.Empty(t, pickRepo.created)
}
