package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gary-picks-engine/internal/worker/config"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/pkg/logger"
)

// SportsDBRepository looks up final scores from TheSportsDB. It backs up the
// ESPN scoreboard and gates prop resolution on the game actually being over.
type SportsDBRepository interface {
	FindEventResult(ctx context.Context, sport, homeTeam, awayTeam string, gameDate time.Time) (*dto.GameResult, error)
}

type sportsDBRepository struct {
	cfg        *config.Config
	logger     *logger.Logger
	httpClient *http.Client
}

// NewSportsDBRepository creates a SportsDBRepository backed by TheSportsDB v1
// JSON API.
func NewSportsDBRepository(cfg *config.Config, log *logger.Logger) SportsDBRepository {
	return &sportsDBRepository{
		cfg:    cfg,
		logger: log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (r *sportsDBRepository) FindEventResult(ctx context.Context, sport, homeTeam, awayTeam string, gameDate time.Time) (*dto.GameResult, error) {
	params := url.Values{}
	params.Set("d", gameDate.Format("2006-01-02"))
	params.Set("l", sport)

	apiURL := fmt.Sprintf("%s/%s/eventsday.php?%s", r.cfg.SportsDB.BaseURL, r.cfg.SportsDB.APIKey, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to TheSportsDB API", logger.ErrorField(err), logger.StringField("sport", sport))
		return nil, fmt.Errorf("failed to send request to TheSportsDB API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from TheSportsDB API", logger.IntField("status_code", resp.StatusCode), logger.StringField("sport", sport))
		return nil, fmt.Errorf("received non-OK response from TheSportsDB API: %d - %s", resp.StatusCode, string(body))
	}

	var events dto.SportsDBEventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	for _, event := range events.Events {
		if !matchesTeam(event.HomeTeam, homeTeam) || !matchesTeam(event.AwayTeam, awayTeam) {
			continue
		}

		result := &dto.GameResult{
			EventID:   event.EventID,
			HomeTeam:  event.HomeTeam,
			AwayTeam:  event.AwayTeam,
			Completed: isFinalStatus(event.Status) && event.HomeScore != "" && event.AwayScore != "",
			Postponed: strings.EqualFold(event.PostponedX, "yes") || strings.EqualFold(event.Status, "Postponed"),
		}
		if result.Completed {
			result.HomeScore, _ = strconv.ParseFloat(event.HomeScore, 64)
			result.AwayScore, _ = strconv.ParseFloat(event.AwayScore, 64)
		}
		return result, nil
	}

	return nil, ErrStatUnavailable
}

// isFinalStatus reports whether TheSportsDB considers the event over.
// In-play events already carry running scores, so a score alone never means
// the game finished.
func isFinalStatus(status string) bool {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "MATCH FINISHED", "FINISHED", "FT", "AOT":
		return true
	}
	return false
}

// matchesTeam compares team names loosely. TheSportsDB uses full franchise
// names while odds feeds sometimes carry short forms.
func matchesTeam(candidate, want string) bool {
	if strings.EqualFold(candidate, want) {
		return true
	}
	c := strings.ToLower(candidate)
	w := strings.ToLower(want)
	return strings.Contains(c, w) || strings.Contains(w, c)
}
