package dto

import "time"

// CreateDecisionRequest is the DTO for recording a bet/fade call on a pick.
type CreateDecisionRequest struct {
	UserID   string `json:"user_id"`
	PickID   uint   `json:"pick_id"`
	Decision string `json:"decision"` // "bet" or "fade"
}

// DecisionResponse is the DTO for API responses containing a user decision.
type DecisionResponse struct {
	ID        uint          `json:"id"`
	UserID    string        `json:"user_id"`
	PickID    uint          `json:"pick_id"`
	Decision  string        `json:"decision"`
	Outcome   string        `json:"outcome"`
	SettledAt *time.Time    `json:"settled_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Pick      *PickResponse `json:"pick,omitempty"`
}

// UserStatsResponse is the DTO for API responses containing a user's record.
type UserStatsResponse struct {
	UserID         string  `json:"user_id"`
	TotalDecisions int     `json:"total_decisions"`
	WinCount       int     `json:"win_count"`
	LossCount      int     `json:"loss_count"`
	PushCount      int     `json:"push_count"`
	CurrentStreak  int     `json:"current_streak"`
	WinRate        float64 `json:"win_rate"`
	Bankroll       float64 `json:"bankroll"`
}
