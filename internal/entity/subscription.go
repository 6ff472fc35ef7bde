package entity

import (
	"time"

	"gorm.io/datatypes"
)

// PlanTier is the subscription plan level.
type PlanTier string

const (
	PlanFree PlanTier = "free"
	PlanPro  PlanTier = "pro"
)

// Subscription holds a user's billing state. Mutated exclusively by payment
// provider webhook events.
type Subscription struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"user_id"`
	CustomerID         string     `gorm:"type:varchar(100);index" json:"customer_id"`
	SubscriptionID     string     `gorm:"type:varchar(100)" json:"subscription_id"`
	PlanTier           PlanTier   `gorm:"type:varchar(20);not null;default:free" json:"plan_tier"`
	Status             string     `gorm:"type:varchar(30);not null;default:inactive" json:"status"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool       `gorm:"not null;default:false" json:"cancel_at_period_end"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Subscription model.
func (Subscription) TableName() string {
	return "subscriptions"
}

// WebhookEvent is a persisted payment-provider webhook delivery. Events are
// stored before processing; the unique provider event id makes redelivery a
// no-op.
type WebhookEvent struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Provider     string         `gorm:"type:varchar(20);not null" json:"provider"`
	EventID      string         `gorm:"type:varchar(100);not null;uniqueIndex" json:"event_id"`
	EventType    string         `gorm:"type:varchar(100);not null" json:"event_type"`
	Payload      datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	Processed    bool           `gorm:"not null;default:false" json:"processed"`
	ProcessedAt  *time.Time     `json:"processed_at,omitempty"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the WebhookEvent model.
func (WebhookEvent) TableName() string {
	return "webhook_events"
}
