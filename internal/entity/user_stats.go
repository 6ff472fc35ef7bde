package entity

import "time"

// UserStats aggregates a user's decision record and bankroll. Mutated only at
// settlement time.
type UserStats struct {
	UserID         string    `gorm:"type:varchar(64);primaryKey" json:"user_id"`
	TotalDecisions int       `gorm:"not null;default:0" json:"total_decisions"`
	WinCount       int       `gorm:"not null;default:0" json:"win_count"`
	LossCount      int       `gorm:"not null;default:0" json:"loss_count"`
	PushCount      int       `gorm:"not null;default:0" json:"push_count"`
	CurrentStreak  int       `gorm:"not null;default:0" json:"current_streak"`
	Bankroll       float64   `gorm:"not null;default:1000" json:"bankroll"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the UserStats model.
func (UserStats) TableName() string {
	return "user_stats"
}

// Wager is a bankroll play recorded when a decision settles. The amount is
// the stake the settlement used; a database trigger derives it from the
// bankroll only when the application leaves it unset.
type Wager struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       string     `gorm:"type:varchar(64);not null;index" json:"user_id"`
	PickID       uint       `gorm:"not null" json:"pick_id"`
	Amount       float64    `json:"amount"`
	OddsAmerican int        `gorm:"not null" json:"odds_american"`
	Profit       float64    `json:"profit"`
	Result       PickStatus `gorm:"type:varchar(20);not null" json:"result"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Wager model.
func (Wager) TableName() string {
	return "wagers"
}
