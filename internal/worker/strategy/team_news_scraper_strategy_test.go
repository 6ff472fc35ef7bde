package strategy

import (
	"testing"
	"time"

	"gary-picks-engine/internal/worker/config"

	"github.com/stretchr/testify/assert"
)

func TestApplyNewsDefaults(t *testing.T) {
	defaults := config.News{
		MaxArticlesPerTeam: 5,
		MaxArticleAge:      72 * time.Hour,
		RequestDelay:       2 * time.Second,
	}

	tests := []struct {
		name    string
		payload TeamNewsScraperPayload
		want    TeamNewsScraperPayload
	}{
		{
			name:    "empty payload takes configured defaults",
			payload: TeamNewsScraperPayload{},
			want:    TeamNewsScraperPayload{MaxNews: 5, MaxNewsAgeInDays: 3, DelayInterval: 2},
		},
		{
			name:    "payload values win over defaults",
			payload: TeamNewsScraperPayload{MaxNews: 10, MaxNewsAgeInDays: 1, DelayInterval: 4},
			want:    TeamNewsScraperPayload{MaxNews: 10, MaxNewsAgeInDays: 1, DelayInterval: 4},
		},
		{
			name:    "partial payload fills only the gaps",
			payload: TeamNewsScraperPayload{MaxNews: 10},
			want:    TeamNewsScraperPayload{MaxNews: 10, MaxNewsAgeInDays: 3, DelayInterval: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyNewsDefaults(tt.payload, defaults)
			assert.Equal(t, tt.want.MaxNews, got.MaxNews)
			assert.Equal(t, tt.want.MaxNewsAgeInDays, got.MaxNewsAgeInDays)
			assert.Equal(t, tt.want.DelayInterval, got.DelayInterval)
		})
	}
}

func TestApplyNewsDefaultsZeroConfig(t *testing.T) {
	got := applyNewsDefaults(TeamNewsScraperPayload{}, config.News{})
	assert.Zero(t, got.MaxNews)
	assert.Zero(t, got.MaxNewsAgeInDays)
	assert.Zero(t, got.DelayInterval)
}
