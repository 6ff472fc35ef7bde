package entity

import (
	"time"

	"gorm.io/datatypes"
)

// PropSide is the over/under side of a player prop.
type PropSide string

const (
	PropSideOver  PropSide = "over"
	PropSideUnder PropSide = "under"
)

// PropPick is a generated player-performance betting recommendation.
type PropPick struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Sport           string         `gorm:"type:varchar(20);not null;index" json:"sport"`
	EventID         string         `gorm:"type:varchar(100)" json:"event_id"`
	GameTime        time.Time      `gorm:"not null" json:"game_time"`
	PlayerName      string         `gorm:"not null" json:"player_name"`
	Team            string         `json:"team"`
	Opponent        string         `json:"opponent"`
	StatType        string         `gorm:"type:varchar(50);not null" json:"stat_type"`
	Line            float64        `gorm:"not null" json:"line"`
	Side            PropSide       `gorm:"type:varchar(10);not null" json:"side"`
	OddsAmerican    int            `gorm:"not null" json:"odds_american"`
	ConfidenceScore float64        `gorm:"not null" json:"confidence_score"`
	Rationale       string         `gorm:"type:text" json:"rationale"`
	Status          PickStatus     `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	ActualValue     *float64       `json:"actual_value,omitempty"`
	ResultSource    string         `gorm:"type:varchar(30)" json:"result_source"`
	Provider        string         `gorm:"type:varchar(20)" json:"provider"`
	Data            datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`
	SettledAt       *time.Time     `json:"settled_at,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the PropPick model.
func (PropPick) TableName() string {
	return "prop_picks"
}
