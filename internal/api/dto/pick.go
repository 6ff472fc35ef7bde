package dto

import (
	"time"
)

// PickResponse is the DTO for API responses containing a game pick.
type PickResponse struct {
	ID              uint      `json:"id"`
	Sport           string    `json:"sport"`
	League          string    `json:"league"`
	HomeTeam        string    `json:"home_team"`
	AwayTeam        string    `json:"away_team"`
	PickTeam        string    `json:"pick_team"`
	BetType         string    `json:"bet_type"`
	Spread          *float64  `json:"spread,omitempty"`
	OddsAmerican    int       `json:"odds_american"`
	ConfidenceScore float64   `json:"confidence_score"`
	Rationale       string    `json:"rationale"`
	Status          string    `json:"status"`
	GameTime        time.Time `json:"game_time"`
	CreatedAt       time.Time `json:"created_at"`
}

// PropPickResponse is the DTO for API responses containing a player prop pick.
type PropPickResponse struct {
	ID              uint      `json:"id"`
	Sport           string    `json:"sport"`
	PlayerName      string    `json:"player_name"`
	Team            string    `json:"team"`
	Opponent        string    `json:"opponent"`
	StatType        string    `json:"stat_type"`
	Line            float64   `json:"line"`
	Side            string    `json:"side"`
	OddsAmerican    int       `json:"odds_american"`
	ConfidenceScore float64   `json:"confidence_score"`
	Rationale       string    `json:"rationale"`
	Status          string    `json:"status"`
	ActualValue     *float64  `json:"actual_value,omitempty"`
	GameTime        time.Time `json:"game_time"`
	CreatedAt       time.Time `json:"created_at"`
}
