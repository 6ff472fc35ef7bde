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

// BallDontLieRepository resolves NBA player stat lines from box scores.
type BallDontLieRepository interface {
	ResolveStat(ctx context.Context, query dto.StatQuery) (*dto.StatResult, error)
}

type ballDontLieRepository struct {
	cfg        *config.Config
	logger     *logger.Logger
	httpClient *http.Client
}

// NewBallDontLieRepository creates a BallDontLieRepository backed by the
// balldontlie.io API.
func NewBallDontLieRepository(cfg *config.Config, log *logger.Logger) BallDontLieRepository {
	return &ballDontLieRepository{
		cfg:    cfg,
		logger: log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (r *ballDontLieRepository) ResolveStat(ctx context.Context, query dto.StatQuery) (*dto.StatResult, error) {
	if query.Sport != "NBA" {
		return nil, ErrStatUnavailable
	}

	playerID, err := r.findPlayerID(ctx, query.PlayerName)
	if err != nil {
		return nil, err
	}

	row, err := r.findStatRow(ctx, playerID, query.GameTime)
	if err != nil {
		return nil, err
	}

	value, err := extractStatValue(row, query.StatType)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Resolved stat from box score",
		logger.StringField("player", query.PlayerName),
		logger.StringField("stat_type", query.StatType),
		logger.StringField("value", strconv.FormatFloat(value, 'f', -1, 64)),
	)

	return &dto.StatResult{Value: value, Source: "balldontlie"}, nil
}

func (r *ballDontLieRepository) findPlayerID(ctx context.Context, playerName string) (int, error) {
	params := url.Values{}
	params.Set("search", playerName)

	body, err := r.sendRequest(ctx, fmt.Sprintf("%s/players?%s", r.cfg.BallDontLie.BaseURL, params.Encode()))
	if err != nil {
		return 0, err
	}

	var players dto.BDLPlayersResponse
	if err := json.Unmarshal(body, &players); err != nil {
		return 0, fmt.Errorf("failed to unmarshal players response: %w", err)
	}

	playerID, ok := matchPlayerID(players.Data, playerName)
	if !ok {
		return 0, ErrStatUnavailable
	}
	return playerID, nil
}

// matchPlayerID picks the searched player out of the results. An exact full
// name wins; a lone result only counts when its last name matches the query,
// so a fuzzy search hit cannot settle a prop with the wrong player's line.
func matchPlayerID(players []dto.BDLPlayer, playerName string) (int, bool) {
	for _, player := range players {
		fullName := player.FirstName + " " + player.LastName
		if strings.EqualFold(fullName, playerName) {
			return player.ID, true
		}
	}

	if len(players) == 1 {
		parts := strings.Fields(playerName)
		if len(parts) > 0 && strings.EqualFold(players[0].LastName, parts[len(parts)-1]) {
			return players[0].ID, true
		}
	}

	return 0, false
}

func (r *ballDontLieRepository) findStatRow(ctx context.Context, playerID int, gameTime time.Time) (*dto.BDLStatRow, error) {
	params := url.Values{}
	params.Set("player_ids[]", strconv.Itoa(playerID))
	params.Set("dates[]", gameTime.Format("2006-01-02"))

	body, err := r.sendRequest(ctx, fmt.Sprintf("%s/stats?%s", r.cfg.BallDontLie.BaseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var stats dto.BDLStatsResponse
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats response: %w", err)
	}

	for i := range stats.Data {
		if stats.Data[i].Game.Status == "Final" {
			return &stats.Data[i], nil
		}
	}

	return nil, ErrStatUnavailable
}

func (r *ballDontLieRepository) sendRequest(ctx context.Context, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Authorization", r.cfg.BallDontLie.APIKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to BallDontLie API", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to BallDontLie API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from BallDontLie API", logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("received non-OK response from BallDontLie API: %d - %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// extractStatValue maps a prop stat type to the box score columns. Combo
// props like "pts+rebs+asts" sum their components.
func extractStatValue(row *dto.BDLStatRow, statType string) (float64, error) {
	switch normalizeStatType(statType) {
	case "points":
		return row.Pts, nil
	case "rebounds":
		return row.Reb, nil
	case "assists":
		return row.Ast, nil
	case "steals":
		return row.Stl, nil
	case "blocks":
		return row.Blk, nil
	case "threes":
		return row.Fg3m, nil
	case "pts+rebs":
		return row.Pts + row.Reb, nil
	case "pts+asts":
		return row.Pts + row.Ast, nil
	case "rebs+asts":
		return row.Reb + row.Ast, nil
	case "pts+rebs+asts":
		return row.Pts + row.Reb + row.Ast, nil
	default:
		return 0, ErrStatUnavailable
	}
}

func normalizeStatType(statType string) string {
	s := strings.ToLower(strings.TrimSpace(statType))
	s = strings.ReplaceAll(s, " ", "")
	switch s {
	case "pts", "point", "points":
		return "points"
	case "reb", "rebs", "rebound", "rebounds":
		return "rebounds"
	case "ast", "asts", "assist", "assists":
		return "assists"
	case "stl", "steal", "steals":
		return "steals"
	case "blk", "block", "blocks":
		return "blocks"
	case "3pm", "threes", "3ptm", "threepointersmade":
		return "threes"
	}
	return s
}
