package strategy

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/repository"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/utils"
)

// NewsSummaryStrategy condenses a team's ranked recent articles into one
// digest the pick generation prompt can carry.
type NewsSummaryStrategy struct {
	logger          *logger.Logger
	teamRepo        repository.TeamRepository
	teamNewsRepo    repository.TeamNewsRepository
	newsSummaryRepo repository.NewsSummaryRepository
	aiRepo          repository.AIRepository
}

// NewsSummaryPayload is the job payload for summary generation.
type NewsSummaryPayload struct {
	Sports           []string `json:"sports"`
	MaxNews          int      `json:"max_news"`
	MaxNewsAgeInDays int      `json:"max_news_age_in_days"`
}

// NewsSummaryTeamResult reports the outcome per team.
type NewsSummaryTeamResult struct {
	Team      string `json:"team"`
	IsSuccess bool   `json:"is_success"`
	Error     string `json:"error,omitempty"`
}

// NewNewsSummaryStrategy creates a new instance of NewsSummaryStrategy.
func NewNewsSummaryStrategy(
	log *logger.Logger,
	teamRepo repository.TeamRepository,
	teamNewsRepo repository.TeamNewsRepository,
	newsSummaryRepo repository.NewsSummaryRepository,
	aiRepo repository.AIRepository,
) *NewsSummaryStrategy {
	return &NewsSummaryStrategy{
		logger:          log,
		teamRepo:        teamRepo,
		teamNewsRepo:    teamNewsRepo,
		newsSummaryRepo: newsSummaryRepo,
		aiRepo:          aiRepo,
	}
}

// GetType returns the job type this strategy handles.
func (s *NewsSummaryStrategy) GetType() entity.JobType {
	return entity.JobTypeNewsSummary
}

// Execute generates a summary for every tracked team with recent news.
func (s *NewsSummaryStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var payload NewsSummaryPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
	}

	teams, err := s.loadTeams(ctx, payload.Sports)
	if err != nil {
		s.logger.Error("Failed to load tracked teams", logger.ErrorField(err))
		return "", fmt.Errorf("failed to load tracked teams: %w", err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []NewsSummaryTeamResult
	)

	for _, team := range teams {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		wg.Add(1)
		team := team
		utils.GoSafe(func() {
			defer wg.Done()
			result := s.summarizeTeam(ctx, team, payload)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	wg.Wait()

	resultJSON, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(resultJSON), nil
}

func (s *NewsSummaryStrategy) loadTeams(ctx context.Context, sports []string) ([]entity.Team, error) {
	if len(sports) == 0 {
		return s.teamRepo.FindAll(ctx)
	}

	var teams []entity.Team
	for _, sport := range sports {
		sportTeams, err := s.teamRepo.FindBySport(ctx, sport)
		if err != nil {
			return nil, err
		}
		teams = append(teams, sportTeams...)
	}
	return teams, nil
}

func (s *NewsSummaryStrategy) summarizeTeam(ctx context.Context, team entity.Team, payload NewsSummaryPayload) NewsSummaryTeamResult {
	result := NewsSummaryTeamResult{Team: team.Name}

	rankedNews, err := s.teamNewsRepo.FindRankedNews(ctx, team.Name, payload.MaxNews, payload.MaxNewsAgeInDays)
	if err != nil {
		s.logger.Error("Failed to fetch ranked news", logger.ErrorField(err), logger.StringField("team", team.Name))
		result.Error = err.Error()
		return result
	}

	if len(rankedNews) == 0 {
		s.logger.Info("No news found for summary generation", logger.StringField("team", team.Name))
		result.Error = "no news found for summary generation"
		return result
	}

	summaryResult, err := s.aiRepo.GenerateNewsSummary(ctx, team.Name, rankedNews)
	if err != nil {
		s.logger.Error("Failed to generate news summary", logger.ErrorField(err), logger.StringField("team", team.Name))
		result.Error = err.Error()
		return result
	}

	summary := entity.NewsSummary{
		Team:                   team.Name,
		Sport:                  team.Sport,
		SummarySentiment:       summaryResult.SummarySentiment,
		SummaryImpact:          summaryResult.SummaryImpact,
		SummaryConfidenceScore: summaryResult.SummaryConfidenceScore,
		KeyIssues:              summaryResult.KeyIssues,
		ShortSummary:           summaryResult.ShortSummary,
		HashIdentifier:         summaryHash(team.Name, rankedNews),
		CreatedAt:              utils.TimeNowET(),
	}

	for _, news := range rankedNews {
		if news.PublishedAt == nil {
			continue
		}
		if summary.SummaryStart.IsZero() || news.PublishedAt.Before(summary.SummaryStart) {
			summary.SummaryStart = *news.PublishedAt
		}
		if news.PublishedAt.After(summary.SummaryEnd) {
			summary.SummaryEnd = *news.PublishedAt
		}
	}

	if err := s.newsSummaryRepo.CreateIgnoreConflict(ctx, &summary); err != nil {
		s.logger.Error("Failed to save news summary", logger.ErrorField(err), logger.StringField("team", team.Name))
		result.Error = err.Error()
		return result
	}

	s.logger.Info("Generated team news summary", logger.StringField("team", team.Name))
	result.IsSuccess = true
	return result
}

// summaryHash identifies a summary by the exact article set it covers, so a
// rerun over the same articles is a no-op.
func summaryHash(team string, news []entity.TeamNews) string {
	ids := make([]string, 0, len(news))
	for _, n := range news {
		ids = append(ids, strconv.FormatUint(uint64(n.ID), 10))
	}
	sum := md5.Sum([]byte(team + "|" + strings.Join(ids, ",")))
	return hex.EncodeToString(sum[:])
}
