package entity

import (
	"time"

	"gorm.io/datatypes"
)

// BetType identifies the market a pick is made on.
type BetType string

const (
	BetTypeMoneyline BetType = "moneyline"
	BetTypeSpread    BetType = "spread"
)

// PickStatus is the settlement state of a pick.
type PickStatus string

const (
	PickStatusPending   PickStatus = "pending"
	PickStatusWon       PickStatus = "won"
	PickStatusLost      PickStatus = "lost"
	PickStatusPush      PickStatus = "push"
	PickStatusPostponed PickStatus = "postponed"
)

// Pick is a generated game-outcome betting recommendation.
type Pick struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Sport           string         `gorm:"type:varchar(20);not null;index" json:"sport"`
	League          string         `gorm:"type:varchar(20)" json:"league"`
	EventID         string         `gorm:"type:varchar(100);not null" json:"event_id"`
	HomeTeam        string         `gorm:"not null" json:"home_team"`
	AwayTeam        string         `gorm:"not null" json:"away_team"`
	PickTeam        string         `gorm:"not null" json:"pick_team"`
	BetType         BetType        `gorm:"type:varchar(20);not null" json:"bet_type"`
	Spread          *float64       `json:"spread,omitempty"`
	OddsAmerican    int            `gorm:"not null" json:"odds_american"`
	ConfidenceScore float64        `gorm:"not null" json:"confidence_score"`
	Rationale       string         `gorm:"type:text" json:"rationale"`
	Status          PickStatus     `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	GameTime        time.Time      `gorm:"not null" json:"game_time"`
	Provider        string         `gorm:"type:varchar(20)" json:"provider"`
	Data            datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`
	SettledAt       *time.Time     `json:"settled_at,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Pick model.
func (Pick) TableName() string {
	return "picks"
}
