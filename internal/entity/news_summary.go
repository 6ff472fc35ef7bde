package entity

import (
	"time"

	"github.com/lib/pq"
)

// NewsSummary is an LLM-generated digest of recent news for a team, fed into
// pick generation prompts.
type NewsSummary struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	Team                   string         `gorm:"type:varchar(100);not null" json:"team"`
	Sport                  string         `gorm:"type:varchar(20)" json:"sport"`
	SummarySentiment       string         `gorm:"type:varchar(50)" json:"summary_sentiment"`
	SummaryImpact          string         `gorm:"type:varchar(50)" json:"summary_impact"`
	SummaryConfidenceScore float64        `json:"summary_confidence_score"`
	KeyIssues              pq.StringArray `gorm:"type:text[]" json:"key_issues"`
	ShortSummary           string         `gorm:"type:text" json:"short_summary"`
	SummaryStart           time.Time      `json:"summary_start"`
	SummaryEnd             time.Time      `json:"summary_end"`
	HashIdentifier         string         `gorm:"type:text;not null" json:"hash_identifier"`
	CreatedAt              time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the NewsSummary model.
func (NewsSummary) TableName() string {
	return "news_summaries"
}
