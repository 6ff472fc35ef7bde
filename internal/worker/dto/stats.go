package dto

import "time"

// StatQuery identifies one player stat line to resolve after a game ends.
type StatQuery struct {
	Sport      string
	PlayerName string
	Team       string
	Opponent   string
	StatType   string
	GameTime   time.Time
}

// StatResult is a resolved stat value and where it came from.
type StatResult struct {
	Value  float64
	Source string
}

// BDLStatsResponse is the BallDontLie per-game stats page.
type BDLStatsResponse struct {
	Data []BDLStatRow `json:"data"`
	Meta BDLMeta      `json:"meta"`
}

// BDLMeta is BallDontLie pagination metadata.
type BDLMeta struct {
	NextCursor int `json:"next_cursor"`
	PerPage    int `json:"per_page"`
}

// BDLStatRow is one player's line in one game.
type BDLStatRow struct {
	Pts    float64   `json:"pts"`
	Reb    float64   `json:"reb"`
	Ast    float64   `json:"ast"`
	Stl    float64   `json:"stl"`
	Blk    float64   `json:"blk"`
	Fg3m   float64   `json:"fg3m"`
	Min    string    `json:"min"`
	Player BDLPlayer `json:"player"`
	Game   BDLGame   `json:"game"`
}

// BDLPlayer identifies the player for a stat row.
type BDLPlayer struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// BDLGame identifies the game for a stat row.
type BDLGame struct {
	ID     int    `json:"id"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// BDLPlayersResponse is the BallDontLie player search page.
type BDLPlayersResponse struct {
	Data []BDLPlayer `json:"data"`
}

// SportsDBEventsResponse is TheSportsDB events-on-day document.
type SportsDBEventsResponse struct {
	Events []SportsDBEvent `json:"events"`
}

// SportsDBEvent is one event row from TheSportsDB.
type SportsDBEvent struct {
	EventID    string `json:"idEvent"`
	Event      string `json:"strEvent"`
	HomeTeam   string `json:"strHomeTeam"`
	AwayTeam   string `json:"strAwayTeam"`
	HomeScore  string `json:"intHomeScore"`
	AwayScore  string `json:"intAwayScore"`
	DateEvent  string `json:"dateEvent"`
	Status     string `json:"strStatus"`
	PostponedX string `json:"strPostponed"`
}

// SportsDBPlayersResponse is TheSportsDB player search document.
type SportsDBPlayersResponse struct {
	Players []SportsDBPlayer `json:"player"`
}

// SportsDBPlayer is one player row from TheSportsDB.
type SportsDBPlayer struct {
	PlayerID string `json:"idPlayer"`
	Name     string `json:"strPlayer"`
	Team     string `json:"strTeam"`
	Sport    string `json:"strSport"`
}
