package repository

import (
	"context"
	"errors"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/dto"
)

// ErrStatUnavailable means a data provider has no answer for a stat query.
// The resolver treats it as a signal to fall through to the next provider.
var ErrStatUnavailable = errors.New("stat unavailable from provider")

// AIRepository defines the LLM operations the worker depends on. Implemented
// by the OpenAI, Perplexity, and Gemini clients.
type AIRepository interface {
	GeneratePicks(ctx context.Context, sport string, games []dto.GameOdds, summaries []entity.NewsSummary, maxPicks int) (*dto.PickGenerationResult, error)
	GeneratePropPicks(ctx context.Context, sport string, games []dto.GameOdds, summaries []entity.NewsSummary, maxPicks int) (*dto.PropGenerationResult, error)
	AnalyzeNews(ctx context.Context, title, publishedDate, content string, teams []entity.Team) (*dto.NewsAnalysisResult, error)
	GenerateNewsSummary(ctx context.Context, team string, newsItems []entity.TeamNews) (*dto.NewsSummaryResult, error)
	ResolvePlayerStat(ctx context.Context, query dto.StatQuery) (*dto.StatAnswerResult, error)
}
