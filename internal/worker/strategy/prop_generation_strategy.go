package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/internal/worker/repository"
	"gary-picks-engine/pkg/logger"
)

// PropGenerationStrategy asks the model for player prop recommendations per
// sport. Prop markets are thinner than game lines, so this runs inline
// instead of fanning out.
type PropGenerationStrategy struct {
	logger          *logger.Logger
	oddsRepo        repository.OddsRepository
	newsSummaryRepo repository.NewsSummaryRepository
	propPickRepo    repository.PropPickRepository
	aiRepo          repository.AIRepository
	providerName    string
}

// PropGenerationResult reports per-sport generation counts.
type PropGenerationResult struct {
	Sport   string `json:"sport"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Error   string `json:"error,omitempty"`
}

// NewPropGenerationStrategy creates a new PropGenerationStrategy.
func NewPropGenerationStrategy(
	log *logger.Logger,
	oddsRepo repository.OddsRepository,
	newsSummaryRepo repository.NewsSummaryRepository,
	propPickRepo repository.PropPickRepository,
	aiRepo repository.AIRepository,
	providerName string,
) JobExecutionStrategy {
	return &PropGenerationStrategy{
		logger:          log,
		oddsRepo:        oddsRepo,
		newsSummaryRepo: newsSummaryRepo,
		propPickRepo:    propPickRepo,
		aiRepo:          aiRepo,
		providerName:    providerName,
	}
}

// GetType returns the job type this strategy handles.
func (s *PropGenerationStrategy) GetType() entity.JobType {
	return entity.JobTypePropGeneration
}

// Execute generates prop picks for every configured sport.
func (s *PropGenerationStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var payload PickGenerationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		s.logger.Error("Failed to unmarshal job payload", logger.ErrorField(err), logger.Field("job_id", job.ID))
		return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
	}

	if len(payload.Sports) == 0 {
		return "", fmt.Errorf("prop generation job has no sports configured")
	}

	isSuccess := false
	var results []PropGenerationResult
	for _, target := range payload.Sports {
		result := s.generateForSport(ctx, target.Sport, payload.MaxPicks)
		if result.Error == "" {
			isSuccess = true
		}
		results = append(results, result)
	}

	resultJSON, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	if isSuccess {
		return string(resultJSON), nil
	}

	return string(resultJSON), fmt.Errorf("prop generation failed for every sport")
}

func (s *PropGenerationStrategy) generateForSport(ctx context.Context, sport string, maxPicks int) PropGenerationResult {
	result := PropGenerationResult{Sport: sport}

	games, err := s.oddsRepo.GetGameOdds(ctx, sport)
	if err != nil {
		s.logger.Error("Failed to fetch game odds", logger.ErrorField(err), logger.StringField("sport", sport))
		result.Error = err.Error()
		return result
	}

	if len(games) == 0 {
		s.logger.Info("No games on the board", logger.StringField("sport", sport))
		return result
	}

	summaries, err := s.newsSummaryRepo.FindLatestForTeams(ctx, teamsFromGames(games))
	if err != nil {
		s.logger.Warn("Failed to load news summaries, generating without context", logger.ErrorField(err), logger.StringField("sport", sport))
	}

	generated, err := s.aiRepo.GeneratePropPicks(ctx, sport, games, summaries, maxPicks)
	if err != nil {
		s.logger.Error("Failed to generate prop picks", logger.ErrorField(err), logger.StringField("sport", sport))
		result.Error = err.Error()
		return result
	}

	gamesByEvent := make(map[string]dto.GameOdds, len(games))
	for _, game := range games {
		gamesByEvent[game.EventID] = game
	}

	for _, prop := range generated.Props {
		game, ok := gamesByEvent[prop.EventID]
		if !ok {
			s.logger.Warn("Model returned prop for unknown event", logger.StringField("event_id", prop.EventID), logger.StringField("player", prop.PlayerName))
			result.Skipped++
			continue
		}

		propPick := &entity.PropPick{
			Sport:           sport,
			EventID:         prop.EventID,
			GameTime:        game.GameTime,
			PlayerName:      prop.PlayerName,
			Team:            prop.Team,
			Opponent:        prop.Opponent,
			StatType:        prop.StatType,
			Line:            prop.Line,
			Side:            entity.PropSide(prop.Side),
			OddsAmerican:    prop.OddsAmerican,
			ConfidenceScore: prop.ConfidenceScore,
			Rationale:       prop.Rationale,
			Status:          entity.PickStatusPending,
			Provider:        s.providerName,
		}

		created, err := s.propPickRepo.CreateIgnoreConflict(ctx, propPick)
		if err != nil {
			s.logger.Error("Failed to store prop pick", logger.ErrorField(err), logger.StringField("player", prop.PlayerName))
			result.Error = err.Error()
			continue
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}

	return result
}

// teamsFromGames collects the distinct team names across the slate.
func teamsFromGames(games []dto.GameOdds) []string {
	seen := make(map[string]bool, len(games)*2)
	var teams []string
	for _, game := range games {
		for _, team := range []string{game.HomeTeam, game.AwayTeam} {
			if !seen[team] {
				seen[team] = true
				teams = append(teams, team)
			}
		}
	}
	return teams
}
