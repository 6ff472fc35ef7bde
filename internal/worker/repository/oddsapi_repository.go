package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gary-picks-engine/internal/worker/config"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// oddsSportKeys maps our sport names to The Odds API sport keys.
var oddsSportKeys = map[string]string{
	"NBA":   "basketball_nba",
	"NFL":   "americanfootball_nfl",
	"MLB":   "baseball_mlb",
	"NHL":   "icehockey_nhl",
	"NCAAB": "basketball_ncaab",
	"NCAAF": "americanfootball_ncaaf",
}

// OddsRepository fetches upcoming games with moneyline and spread prices.
type OddsRepository interface {
	GetGameOdds(ctx context.Context, sport string) ([]dto.GameOdds, error)
}

type oddsAPIRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	inmemoryCache  *cache.Cache
}

// NewOddsAPIRepository creates an OddsRepository backed by The Odds API. Quota
// on the free tier is tight, so responses are cached per sport for CacheTTL.
func NewOddsAPIRepository(cfg *config.Config, log *logger.Logger) OddsRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.OddsAPI.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	return &oddsAPIRepository{
		cfg:    cfg,
		logger: log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		requestLimiter: requestLimiter,
		inmemoryCache:  cache.New(cfg.OddsAPI.CacheTTL, 2*cfg.OddsAPI.CacheTTL),
	}
}

func (r *oddsAPIRepository) GetGameOdds(ctx context.Context, sport string) ([]dto.GameOdds, error) {
	sportKey, ok := oddsSportKeys[sport]
	if !ok {
		return nil, fmt.Errorf("unsupported sport: %s", sport)
	}

	if cached, found := r.inmemoryCache.Get(sportKey); found {
		return cached.([]dto.GameOdds), nil
	}

	events, err := r.fetchEvents(ctx, sportKey)
	if err != nil {
		return nil, err
	}

	games := make([]dto.GameOdds, 0, len(events))
	for _, event := range events {
		game, ok := r.flattenEvent(sport, event)
		if !ok {
			continue
		}
		games = append(games, game)
	}

	r.logger.Debug("Fetched game odds",
		logger.StringField("sport", sport),
		logger.IntField("events", len(events)),
		logger.IntField("games", len(games)),
	)

	r.inmemoryCache.Set(sportKey, games, cache.DefaultExpiration)

	return games, nil
}

func (r *oddsAPIRepository) fetchEvents(ctx context.Context, sportKey string) ([]dto.OddsEvent, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	params := url.Values{}
	params.Set("apiKey", r.cfg.OddsAPI.APIKey)
	params.Set("regions", r.cfg.OddsAPI.Regions)
	params.Set("markets", "h2h,spreads")
	params.Set("oddsFormat", "american")

	apiURL := fmt.Sprintf("%s/v4/sports/%s/odds?%s", r.cfg.OddsAPI.BaseURL, sportKey, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to odds API", logger.ErrorField(err), logger.StringField("sport_key", sportKey))
		return nil, fmt.Errorf("failed to send request to odds API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from odds API", logger.IntField("status_code", resp.StatusCode), logger.StringField("sport_key", sportKey))
		return nil, fmt.Errorf("received non-OK response from odds API: %d - %s", resp.StatusCode, string(body))
	}

	var events []dto.OddsEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return events, nil
}

// flattenEvent reduces an event to a single bookmaker's moneyline and home
// spread. The configured bookmaker is preferred, the first one listed is the
// fallback. Events with no usable h2h market are skipped.
func (r *oddsAPIRepository) flattenEvent(sport string, event dto.OddsEvent) (dto.GameOdds, bool) {
	if len(event.Bookmakers) == 0 {
		return dto.GameOdds{}, false
	}

	bookmaker := event.Bookmakers[0]
	for _, b := range event.Bookmakers {
		if b.Key == r.cfg.OddsAPI.Bookmaker {
			bookmaker = b
			break
		}
	}

	game := dto.GameOdds{
		EventID:      event.ID,
		Sport:        sport,
		HomeTeam:     event.HomeTeam,
		AwayTeam:     event.AwayTeam,
		GameTime:     event.CommenceTime,
		BookmakerKey: bookmaker.Key,
	}

	hasMoneyline := false
	for _, market := range bookmaker.Markets {
		switch market.Key {
		case "h2h":
			for _, outcome := range market.Outcomes {
				switch outcome.Name {
				case event.HomeTeam:
					game.HomeML = int(outcome.Price)
					hasMoneyline = true
				case event.AwayTeam:
					game.AwayML = int(outcome.Price)
				}
			}
		case "spreads":
			for _, outcome := range market.Outcomes {
				if outcome.Name == event.HomeTeam && outcome.Point != nil {
					game.HomeSpread = *outcome.Point
					game.SpreadPrice = int(outcome.Price)
				}
			}
		}
	}

	if !hasMoneyline {
		return dto.GameOdds{}, false
	}

	return game, true
}
