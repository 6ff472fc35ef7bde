package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/internal/worker/repository"
	"gary-picks-engine/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name   string
	result *dto.StatResult
	err    error
	called bool
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Resolve(_ context.Context, _ dto.StatQuery) (*dto.StatResult, error) {
	f.called = true
	return f.result, f.err
}

type fakeSportsDB struct {
	result *dto.GameResult
	err    error
}

func (f *fakeSportsDB) FindEventResult(_ context.Context, _, _, _ string, _ time.Time) (*dto.GameResult, error) {
	return f.result, f.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func testQuery() dto.StatQuery {
	return dto.StatQuery{
		Sport:      "NBA",
		PlayerName: "Jayson Tatum",
		Team:       "Boston Celtics",
		Opponent:   "Miami Heat",
		StatType:   "points",
		GameTime:   time.Date(2026, 1, 15, 19, 0, 0, 0, time.UTC),
	}
}

func TestResolverUsesFirstProviderThatAnswers(t *testing.T) {
	first := &fakeProvider{name: "first", err: repository.ErrStatUnavailable}
	second := &fakeProvider{name: "second", result: &dto.StatResult{Value: 31, Source: "second"}}
	third := &fakeProvider{name: "third", result: &dto.StatResult{Value: 99, Source: "third"}}

	gate := &fakeSportsDB{result: &dto.GameResult{Completed: true}}
	r := NewResolver(testLogger(t), gate, first, second, third)

	result, err := r.Resolve(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Equal(t, 31.0, result.Value)
	assert.Equal(t, "second", result.Source)
	assert.True(t, first.called)
	assert.True(t, second.called)
	assert.False(t, third.called)
}

func TestResolverSkipsFailingProvider(t *testing.T) {
	broken := &fakeProvider{name: "broken", err: errors.New("connection refused")}
	working := &fakeProvider{name: "working", result: &dto.StatResult{Value: 8, Source: "working"}}

	gate := &fakeSportsDB{result: &dto.GameResult{Completed: true}}
	r := NewResolver(testLogger(t), gate, broken, working)

	result, err := r.Resolve(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Equal(t, 8.0, result.Value)
}

func TestResolverGameNotFinishedGate(t *testing.T) {
	provider := &fakeProvider{name: "never", result: &dto.StatResult{Value: 1}}
	gate := &fakeSportsDB{result: &dto.GameResult{Completed: false}}
	r := NewResolver(testLogger(t), gate, provider)

	_, err := r.Resolve(context.Background(), testQuery())
	assert.ErrorIs(t, err, ErrGameNotFinished)
	assert.False(t, provider.called)
}

func TestResolverGateUnknownEventFallsThrough(t *testing.T) {
	provider := &fakeProvider{name: "only", result: &dto.StatResult{Value: 12, Source: "only"}}
	gate := &fakeSportsDB{err: repository.ErrStatUnavailable}
	r := NewResolver(testLogger(t), gate, provider)

	result, err := r.Resolve(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Equal(t, 12.0, result.Value)
}

func TestResolverAllProvidersEmpty(t *testing.T) {
	first := &fakeProvider{name: "first", err: repository.ErrStatUnavailable}
	second := &fakeProvider{name: "second", err: repository.ErrStatUnavailable}

	gate := &fakeSportsDB{result: &dto.GameResult{Completed: true}}
	r := NewResolver(testLogger(t), gate, first, second)

	_, err := r.Resolve(context.Background(), testQuery())
	assert.ErrorIs(t, err, repository.ErrStatUnavailable)
}

func TestResolverProviderReportsGameNotFinished(t *testing.T) {
	provider := &fakeProvider{name: "llm", err: ErrGameNotFinished}
	later := &fakeProvider{name: "later", result: &dto.StatResult{Value: 5}}

	gate := &fakeSportsDB{err: repository.ErrStatUnavailable}
	r := NewResolver(testLogger(t), gate, provider, later)

	_, err := r.Resolve(context.Background(), testQuery())
	assert.ErrorIs(t, err, ErrGameNotFinished)
	assert.False(t, later.called)
}

func TestLLMProviderConfidenceFloor(t *testing.T) {
	repo := &fakeAIRepo{answer: &dto.StatAnswerResult{Found: true, Value: 27, GameEnded: true, Confidence: 0.4}}
	p := NewLLMProvider("perplexity", repo, 0.7)

	_, err := p.Resolve(context.Background(), testQuery())
	assert.ErrorIs(t, err, repository.ErrStatUnavailable)

	repo.answer.Confidence = 0.9
	result, err := p.Resolve(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Equal(t, 27.0, result.Value)
	assert.Equal(t, "perplexity", result.Source)
}

type fakeAIRepo struct {
	repository.AIRepository
	answer *dto.StatAnswerResult
}

func (f *fakeAIRepo) ResolvePlayerStat(_ context.Context, _ dto.StatQuery) (*dto.StatAnswerResult, error) {
	return f.answer, nil
}
