package resolver

import (
	"context"

	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/internal/worker/repository"
)

// boxScoreProvider adapts the BallDontLie repository into the chain.
type boxScoreProvider struct {
	repo repository.BallDontLieRepository
}

// NewBoxScoreProvider wraps a BallDontLie repository as a StatProvider.
func NewBoxScoreProvider(repo repository.BallDontLieRepository) StatProvider {
	return &boxScoreProvider{repo: repo}
}

func (p *boxScoreProvider) Name() string { return "balldontlie" }

func (p *boxScoreProvider) Resolve(ctx context.Context, query dto.StatQuery) (*dto.StatResult, error) {
	return p.repo.ResolveStat(ctx, query)
}

// llmProvider adapts an AI repository into the chain. Answers below the
// confidence floor, answers for unfinished games, and not-found answers all
// fall through to the next provider.
type llmProvider struct {
	name          string
	repo          repository.AIRepository
	minConfidence float64
}

// NewLLMProvider wraps an AI repository as a StatProvider.
func NewLLMProvider(name string, repo repository.AIRepository, minConfidence float64) StatProvider {
	return &llmProvider{name: name, repo: repo, minConfidence: minConfidence}
}

func (p *llmProvider) Name() string { return p.name }

func (p *llmProvider) Resolve(ctx context.Context, query dto.StatQuery) (*dto.StatResult, error) {
	answer, err := p.repo.ResolvePlayerStat(ctx, query)
	if err != nil {
		return nil, err
	}

	if !answer.GameEnded {
		return nil, ErrGameNotFinished
	}
	if !answer.Found || answer.Confidence < p.minConfidence {
		return nil, repository.ErrStatUnavailable
	}

	return &dto.StatResult{Value: answer.Value, Source: p.name}, nil
}
