package dto

// ScoreboardResponse is the ESPN scoreboard document for one sport and day.
type ScoreboardResponse struct {
	Events []ScoreboardEvent `json:"events"`
}

// ScoreboardEvent is one game on the scoreboard.
type ScoreboardEvent struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Name         string        `json:"name"`
	Competitions []Competition `json:"competitions"`
	Status       EventStatus   `json:"status"`
}

// Competition carries the competitors and their scores.
type Competition struct {
	Competitors []Competitor `json:"competitors"`
	Status      EventStatus  `json:"status"`
}

// Competitor is one side of a competition.
type Competitor struct {
	HomeAway string         `json:"homeAway"`
	Score    string         `json:"score"`
	Team     ScoreboardTeam `json:"team"`
}

// ScoreboardTeam identifies a competitor's team.
type ScoreboardTeam struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	ShortName    string `json:"shortDisplayName"`
	Abbreviation string `json:"abbreviation"`
}

// EventStatus is the game state.
type EventStatus struct {
	Type StatusType `json:"type"`
}

// StatusType carries the terminal flags for a game state.
type StatusType struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Completed bool   `json:"completed"`
}

// GameResult is the flattened final score used by settlement.
type GameResult struct {
	EventID   string
	HomeTeam  string
	AwayTeam  string
	HomeScore float64
	AwayScore float64
	Completed bool
	Postponed bool
}
