package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gary-picks-engine/internal/worker/config"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSportsDBTestRepo(t *testing.T, events []dto.SportsDBEvent) SportsDBRepository {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.SportsDBEventsResponse{Events: events})
	}))
	t.Cleanup(server.Close)

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.SportsDB.BaseURL = server.URL
	cfg.SportsDB.APIKey = "test"
	return NewSportsDBRepository(cfg, log)
}

func TestFindEventResultCompletion(t *testing.T) {
	gameDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		event         dto.SportsDBEvent
		wantCompleted bool
		wantPostponed bool
	}{
		{
			name: "finished game with scores settles",
			event: dto.SportsDBEvent{
				EventID: "e1", HomeTeam: "Boston Celtics", AwayTeam: "Miami Heat",
				HomeScore: "112", AwayScore: "104", Status: "Match Finished",
			},
			wantCompleted: true,
		},
		{
			name: "full time shorthand settles",
			event: dto.SportsDBEvent{
				EventID: "e1", HomeTeam: "Boston Celtics", AwayTeam: "Miami Heat",
				HomeScore: "99", AwayScore: "98", Status: "FT",
			},
			wantCompleted: true,
		},
		{
			name: "in-play game carries scores but is not final",
			event: dto.SportsDBEvent{
				EventID: "e1", HomeTeam: "Boston Celtics", AwayTeam: "Miami Heat",
				HomeScore: "58", AwayScore: "61", Status: "2H",
			},
			wantCompleted: false,
		},
		{
			name: "finished status without scores is not final",
			event: dto.SportsDBEvent{
				EventID: "e1", HomeTeam: "Boston Celtics", AwayTeam: "Miami Heat",
				Status: "Match Finished",
			},
			wantCompleted: false,
		},
		{
			name: "postponed game",
			event: dto.SportsDBEvent{
				EventID: "e1", HomeTeam: "Boston Celtics", AwayTeam: "Miami Heat",
				PostponedX: "yes", Status: "Postponed",
			},
			wantCompleted: false,
			wantPostponed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newSportsDBTestRepo(t, []dto.SportsDBEvent{tt.event})

			result, err := repo.FindEventResult(context.Background(), "NBA", "Boston Celtics", "Miami Heat", gameDate)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCompleted, result.Completed)
			assert.Equal(t, tt.wantPostponed, result.Postponed)
			if tt.wantCompleted {
				assert.Greater(t, result.HomeScore, 0.0)
				assert.Greater(t, result.AwayScore, 0.0)
			}
		})
	}
}

func TestFindEventResultNoMatchingEvent(t *testing.T) {
	repo := newSportsDBTestRepo(t, []dto.SportsDBEvent{
		{EventID: "e1", HomeTeam: "Denver Nuggets", AwayTeam: "Utah Jazz", HomeScore: "120", AwayScore: "100", Status: "Match Finished"},
	})

	_, err := repo.FindEventResult(context.Background(), "NBA", "Boston Celtics", "Miami Heat", time.Now())
	assert.ErrorIs(t, err, ErrStatUnavailable)
}
