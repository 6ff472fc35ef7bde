package dto

import "time"

// OddsEvent is a single upcoming game from the odds provider.
type OddsEvent struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one book's markets for an event.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Market is a priced market (h2h, spreads) from a bookmaker.
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is a priced side of a market. Price is American odds; Point is the
// spread line when present.
type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// GameOdds is the flattened per-game odds view fed into prompts and attached
// to stored picks.
type GameOdds struct {
	EventID      string    `json:"event_id"`
	Sport        string    `json:"sport"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	GameTime     time.Time `json:"game_time"`
	HomeML       int       `json:"home_ml"`
	AwayML       int       `json:"away_ml"`
	HomeSpread   float64   `json:"home_spread"`
	SpreadPrice  int       `json:"spread_price"`
	BookmakerKey string    `json:"bookmaker_key"`
}
