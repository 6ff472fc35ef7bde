package entity

import "time"

// DecisionType is whether the user followed the pick or went against it.
type DecisionType string

const (
	DecisionBet  DecisionType = "bet"
	DecisionFade DecisionType = "fade"
)

// UserDecision records a user's bet/fade call on a pick. One per user+pick;
// outcome stays pending until the pick settles.
type UserDecision struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    string       `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_pick" json:"user_id"`
	PickID    uint         `gorm:"not null;uniqueIndex:idx_user_pick" json:"pick_id"`
	Decision  DecisionType `gorm:"type:varchar(10);not null" json:"decision"`
	Outcome   PickStatus   `gorm:"type:varchar(20);not null;default:pending" json:"outcome"`
	SettledAt *time.Time   `json:"settled_at,omitempty"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
	Pick      Pick         `gorm:"foreignKey:PickID" json:"pick,omitempty"`
}

// TableName specifies the table name for the UserDecision model.
func (UserDecision) TableName() string {
	return "user_decisions"
}
