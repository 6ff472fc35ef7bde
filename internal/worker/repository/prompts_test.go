package repository

import (
	"testing"
	"time"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGames() []dto.GameOdds {
	return []dto.GameOdds{
		{
			EventID:     "evt-001",
			HomeTeam:    "Boston Celtics",
			AwayTeam:    "Miami Heat",
			GameTime:    time.Date(2025, 1, 15, 19, 30, 0, 0, time.UTC),
			HomeML:      -180,
			AwayML:      155,
			HomeSpread:  -4.5,
			SpreadPrice: -110,
		},
		{
			EventID:     "evt-002",
			HomeTeam:    "Denver Nuggets",
			AwayTeam:    "Utah Jazz",
			GameTime:    time.Date(2025, 1, 15, 21, 0, 0, 0, time.UTC),
			HomeML:      -300,
			AwayML:      240,
			HomeSpread:  -8.0,
			SpreadPrice: -115,
		},
	}
}

func TestBuildPickGenerationPrompt(t *testing.T) {
	summaries := []entity.NewsSummary{
		{
			Team:                   "Boston Celtics",
			SummarySentiment:       "negative",
			SummaryImpact:          "major",
			SummaryConfidenceScore: 0.82,
			KeyIssues:              []string{"starting center questionable"},
			ShortSummary:           "Injury concerns in the frontcourt.",
		},
	}

	prompt := BuildPickGenerationPrompt("nba", testGames(), summaries, 3)

	assert.Contains(t, prompt, "You are Gary")
	assert.Contains(t, prompt, "NBA")
	assert.Contains(t, prompt, "evt-001")
	assert.Contains(t, prompt, "evt-002")
	assert.Contains(t, prompt, "Miami Heat @ Boston Celtics")
	assert.Contains(t, prompt, "Pick the 3 best bets")
	assert.Contains(t, prompt, "starting center questionable")
	assert.Contains(t, prompt, "Injury concerns in the frontcourt.")
	assert.NotContains(t, prompt, "No recent team news available")
}

func TestBuildPickGenerationPromptWithoutSummaries(t *testing.T) {
	prompt := BuildPickGenerationPrompt("nba", testGames(), nil, 5)

	assert.Contains(t, prompt, "No recent team news available")
	assert.Contains(t, prompt, "Pick the 5 best bets")
}

func TestBuildPropGenerationPrompt(t *testing.T) {
	prompt := BuildPropGenerationPrompt("nba", testGames(), nil, 4)

	assert.Contains(t, prompt, "You are Gary")
	assert.Contains(t, prompt, "player prop bets")
	assert.Contains(t, prompt, "evt-001")
	assert.Contains(t, prompt, `"side": "over | under"`)
}

func TestBuildStatResolutionPrompt(t *testing.T) {
	query := dto.StatQuery{
		Sport:      "NBA",
		PlayerName: "Jayson Tatum",
		Team:       "Boston Celtics",
		Opponent:   "Miami Heat",
		StatType:   "points",
		GameTime:   time.Date(2025, 1, 15, 19, 30, 0, 0, time.UTC),
	}

	prompt := BuildStatResolutionPrompt(query)

	assert.Contains(t, prompt, "Jayson Tatum")
	assert.Contains(t, prompt, "points")
	assert.Contains(t, prompt, "2025-01-15")
	assert.Contains(t, prompt, "Never guess")
}

func TestParseChatResponseJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "plain JSON",
			content: `{"picks": [{"event_id": "evt-001", "pick_team": "Boston Celtics", "bet_type": "moneyline", "confidence_score": 0.62}]}`,
		},
		{
			name:    "fenced JSON",
			content: "```json\n{\"picks\": [{\"event_id\": \"evt-001\", \"pick_team\": \"Boston Celtics\", \"bet_type\": \"moneyline\", \"confidence_score\": 0.62}]}\n```",
		},
		{
			name:    "not JSON",
			content: "I'll take the Celtics tonight.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &dto.OpenAPIRes{
				Choices: []dto.Choice{{Message: dto.Message{Content: tt.content}}},
			}

			var result dto.PickGenerationResult
			err := parseChatResponseJSON(resp, &result)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, result.Picks, 1)
			assert.Equal(t, "evt-001", result.Picks[0].EventID)
			assert.Equal(t, "Boston Celtics", result.Picks[0].PickTeam)
		})
	}
}

func TestParseChatResponseJSONEmptyChoices(t *testing.T) {
	var result dto.PickGenerationResult
	err := parseChatResponseJSON(&dto.OpenAPIRes{}, &result)
	assert.Error(t, err)
}
