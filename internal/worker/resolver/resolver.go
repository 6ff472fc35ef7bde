// Package resolver turns a prop stat query into a final number by walking an
// ordered chain of providers: box score APIs first, LLM adjudication last.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/internal/worker/repository"
	"gary-picks-engine/pkg/logger"
)

// ErrGameNotFinished means the game behind the query has not completed yet,
// so the prop must stay pending.
var ErrGameNotFinished = errors.New("game not finished")

// StatProvider answers a stat query or reports it cannot.
type StatProvider interface {
	Name() string
	Resolve(ctx context.Context, query dto.StatQuery) (*dto.StatResult, error)
}

// Resolver walks the provider chain in order. TheSportsDB acts as a gate in
// front of the chain: when it knows the game and the game is not over, no
// provider is asked at all.
type Resolver struct {
	logger       *logger.Logger
	sportsDBRepo repository.SportsDBRepository
	providers    []StatProvider
}

// NewResolver creates a Resolver over the given providers, tried in order.
func NewResolver(log *logger.Logger, sportsDBRepo repository.SportsDBRepository, providers ...StatProvider) *Resolver {
	return &Resolver{
		logger:       log,
		sportsDBRepo: sportsDBRepo,
		providers:    providers,
	}
}

// Resolve returns the actual stat value for the query, or ErrGameNotFinished
// when the game is still in progress, or repository.ErrStatUnavailable when
// every provider came up empty.
func (r *Resolver) Resolve(ctx context.Context, query dto.StatQuery) (*dto.StatResult, error) {
	if r.sportsDBRepo != nil {
		gameResult, err := r.sportsDBRepo.FindEventResult(ctx, query.Sport, query.Team, query.Opponent, query.GameTime)
		if err == nil && !gameResult.Completed && !gameResult.Postponed {
			return nil, ErrGameNotFinished
		}
		if err != nil && !errors.Is(err, repository.ErrStatUnavailable) {
			r.logger.Warn("Game completion gate failed, continuing to providers", logger.ErrorField(err), logger.StringField("player", query.PlayerName))
		}
	}

	for _, provider := range r.providers {
		result, err := provider.Resolve(ctx, query)
		if err == nil {
			r.logger.Info("Resolved stat",
				logger.StringField("provider", provider.Name()),
				logger.StringField("player", query.PlayerName),
				logger.StringField("stat_type", query.StatType),
			)
			return result, nil
		}
		if errors.Is(err, ErrGameNotFinished) {
			return nil, err
		}
		if !errors.Is(err, repository.ErrStatUnavailable) {
			r.logger.Warn("Stat provider failed, trying next",
				logger.ErrorField(err),
				logger.StringField("provider", provider.Name()),
				logger.StringField("player", query.PlayerName),
			)
		}
	}

	return nil, fmt.Errorf("no provider resolved %s %s: %w", query.PlayerName, query.StatType, repository.ErrStatUnavailable)
}
