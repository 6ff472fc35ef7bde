package entity

import (
	"time"

	"github.com/lib/pq"
)

// TeamNews represents a scraped news article relevant to tracked teams.
type TeamNews struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"not null" json:"title"`
	Link           string         `gorm:"unique;not null" json:"link"`
	PublishedAt    *time.Time     `json:"published_at,omitempty"`
	RawContent     string         `json:"raw_content"`
	Summary        string         `json:"summary"`
	HashIdentifier string         `gorm:"unique;not null" json:"hash_identifier"`
	Source         string         `json:"source"`
	GoogleRSSLink  string         `json:"google_rss_link"`
	ImpactScore    float64        `json:"impact_score"`
	KeyIssue       pq.StringArray `gorm:"key_issue;type:text[]" json:"key_issue"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	NewsMentions   []NewsMention  `gorm:"foreignKey:TeamNewsID" json:"news_mentions"`

	// Fields populated by the ranking query
	Sentiment       string  `gorm:"-" json:"sentiment,omitempty"`
	Impact          string  `gorm:"-" json:"impact,omitempty"`
	ConfidenceScore float64 `gorm:"-" json:"confidence_score,omitempty"`
	Reason          string  `gorm:"-" json:"reason,omitempty"`
}

// TableName specifies the table name for the TeamNews model.
func (TeamNews) TableName() string {
	return "team_news"
}

// NewsMention represents a mention of a tracked team in a news article.
type NewsMention struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TeamNewsID      uint      `json:"team_news_id"`
	Team            string    `gorm:"not null" json:"team"`
	Sport           string    `gorm:"type:varchar(20)" json:"sport"`
	Sentiment       string    `gorm:"not null" json:"sentiment"`
	Impact          string    `gorm:"not null" json:"impact"`
	Reason          string    `gorm:"not null" json:"reason"`
	ConfidenceScore float64   `gorm:"not null" json:"confidence_score"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the NewsMention model.
func (NewsMention) TableName() string {
	return "news_mentions"
}
