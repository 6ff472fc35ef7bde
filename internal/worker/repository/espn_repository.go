package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"gary-picks-engine/internal/worker/config"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/pkg/logger"
)

// espnSportPaths maps our sport names to ESPN scoreboard URL segments.
var espnSportPaths = map[string]string{
	"NBA":   "basketball/nba",
	"NFL":   "football/nfl",
	"MLB":   "baseball/mlb",
	"NHL":   "hockey/nhl",
	"NCAAB": "basketball/mens-college-basketball",
	"NCAAF": "football/college-football",
}

// ScoreboardRepository fetches final scores for a sport on a given day.
type ScoreboardRepository interface {
	GetGameResults(ctx context.Context, sport string, date time.Time) ([]dto.GameResult, error)
}

type espnRepository struct {
	cfg        *config.Config
	logger     *logger.Logger
	httpClient *http.Client
}

// NewESPNRepository creates a ScoreboardRepository backed by the public ESPN
// scoreboard API. The endpoint is unauthenticated, so there is no limiter.
func NewESPNRepository(cfg *config.Config, log *logger.Logger) ScoreboardRepository {
	return &espnRepository{
		cfg:    cfg,
		logger: log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (r *espnRepository) GetGameResults(ctx context.Context, sport string, date time.Time) ([]dto.GameResult, error) {
	sportPath, ok := espnSportPaths[sport]
	if !ok {
		return nil, fmt.Errorf("unsupported sport: %s", sport)
	}

	apiURL := fmt.Sprintf("%s/%s/scoreboard?dates=%s", r.cfg.ESPN.BaseURL, sportPath, date.Format("20060102"))
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to ESPN API", logger.ErrorField(err), logger.StringField("sport", sport))
		return nil, fmt.Errorf("failed to send request to ESPN API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from ESPN API", logger.IntField("status_code", resp.StatusCode), logger.StringField("sport", sport))
		return nil, fmt.Errorf("received non-OK response from ESPN API: %d - %s", resp.StatusCode, string(body))
	}

	var scoreboard dto.ScoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&scoreboard); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	results := make([]dto.GameResult, 0, len(scoreboard.Events))
	for _, event := range scoreboard.Events {
		result, ok := flattenScoreboardEvent(event)
		if !ok {
			continue
		}
		results = append(results, result)
	}

	r.logger.Debug("Fetched scoreboard",
		logger.StringField("sport", sport),
		logger.StringField("date", date.Format("2006-01-02")),
		logger.IntField("results", len(results)),
	)

	return results, nil
}

func flattenScoreboardEvent(event dto.ScoreboardEvent) (dto.GameResult, bool) {
	if len(event.Competitions) == 0 {
		return dto.GameResult{}, false
	}

	result := dto.GameResult{
		EventID:   event.ID,
		Completed: event.Status.Type.Completed,
		Postponed: event.Status.Type.Name == "STATUS_POSTPONED" || event.Status.Type.Name == "STATUS_CANCELED",
	}

	for _, competitor := range event.Competitions[0].Competitors {
		score, err := strconv.ParseFloat(competitor.Score, 64)
		if err != nil {
			score = 0
		}
		switch competitor.HomeAway {
		case "home":
			result.HomeTeam = competitor.Team.DisplayName
			result.HomeScore = score
		case "away":
			result.AwayTeam = competitor.Team.DisplayName
			result.AwayScore = score
		}
	}

	if result.HomeTeam == "" || result.AwayTeam == "" {
		return dto.GameResult{}, false
	}

	return result, true
}
