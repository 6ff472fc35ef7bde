package grading

import (
	"testing"

	"gary-picks-engine/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestGradeMoneyline(t *testing.T) {
	tests := []struct {
		name      string
		pickTeam  string
		homeScore float64
		awayScore float64
		want      entity.PickStatus
	}{
		{"home pick, home wins", "Boston Celtics", 110, 98, entity.PickStatusWon},
		{"home pick, home loses", "Boston Celtics", 98, 110, entity.PickStatusLost},
		{"away pick, away wins", "Miami Heat", 98, 110, entity.PickStatusWon},
		{"away pick, away loses", "Miami Heat", 110, 98, entity.PickStatusLost},
		{"tie is a push", "Boston Celtics", 100, 100, entity.PickStatusPush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradeMoneyline(tt.pickTeam, "Boston Celtics", tt.homeScore, tt.awayScore)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGradeSpread(t *testing.T) {
	tests := []struct {
		name      string
		pickTeam  string
		spread    float64
		homeScore float64
		awayScore float64
		want      entity.PickStatus
	}{
		{"home favorite covers", "Boston Celtics", -6.5, 110, 100, entity.PickStatusWon},
		{"home favorite fails to cover", "Boston Celtics", -6.5, 104, 100, entity.PickStatusLost},
		{"home favorite wins but loses the spread", "Boston Celtics", -6.5, 105, 100, entity.PickStatusLost},
		{"away dog covers while losing", "Miami Heat", 6.5, 104, 100, entity.PickStatusWon},
		{"away dog beaten past the number", "Miami Heat", 6.5, 110, 100, entity.PickStatusLost},
		{"lands on the number", "Boston Celtics", -6, 106, 100, entity.PickStatusPush},
		{"away side lands on the number", "Miami Heat", 6, 106, 100, entity.PickStatusPush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradeSpread(tt.pickTeam, "Boston Celtics", tt.spread, tt.homeScore, tt.awayScore)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGradeProp(t *testing.T) {
	tests := []struct {
		name   string
		side   entity.PropSide
		line   float64
		actual float64
		want   entity.PickStatus
	}{
		{"over hits", entity.PropSideOver, 25.5, 31, entity.PickStatusWon},
		{"over misses", entity.PropSideOver, 25.5, 22, entity.PickStatusLost},
		{"under hits", entity.PropSideUnder, 25.5, 22, entity.PickStatusWon},
		{"under misses", entity.PropSideUnder, 25.5, 31, entity.PickStatusLost},
		{"whole line push", entity.PropSideOver, 25, 25, entity.PickStatusPush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradeProp(tt.side, tt.line, tt.actual)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecisionOutcome(t *testing.T) {
	tests := []struct {
		name       string
		decision   entity.DecisionType
		pickStatus entity.PickStatus
		want       entity.PickStatus
	}{
		{"bet inherits a win", entity.DecisionBet, entity.PickStatusWon, entity.PickStatusWon},
		{"bet inherits a loss", entity.DecisionBet, entity.PickStatusLost, entity.PickStatusLost},
		{"fade inverts a win", entity.DecisionFade, entity.PickStatusWon, entity.PickStatusLost},
		{"fade inverts a loss", entity.DecisionFade, entity.PickStatusLost, entity.PickStatusWon},
		{"push stays push for bet", entity.DecisionBet, entity.PickStatusPush, entity.PickStatusPush},
		{"push stays push for fade", entity.DecisionFade, entity.PickStatusPush, entity.PickStatusPush},
		{"postponed passes through", entity.DecisionFade, entity.PickStatusPostponed, entity.PickStatusPostponed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecisionOutcome(tt.decision, tt.pickStatus)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyOutcome(t *testing.T) {
	t.Run("win adds profit and extends streak", func(t *testing.T) {
		stats := &entity.UserStats{Bankroll: 1000, CurrentStreak: 2}
		ApplyOutcome(stats, entity.PickStatusWon, 100, 90.91)

		assert.Equal(t, 1, stats.TotalDecisions)
		assert.Equal(t, 1, stats.WinCount)
		assert.Equal(t, 3, stats.CurrentStreak)
		assert.InDelta(t, 1090.91, stats.Bankroll, 0.001)
	})

	t.Run("loss subtracts stake and flips streak", func(t *testing.T) {
		stats := &entity.UserStats{Bankroll: 1000, CurrentStreak: 2}
		ApplyOutcome(stats, entity.PickStatusLost, 100, 90.91)

		assert.Equal(t, 1, stats.LossCount)
		assert.Equal(t, -1, stats.CurrentStreak)
		assert.InDelta(t, 900, stats.Bankroll, 0.001)
	})

	t.Run("win after losing streak resets first", func(t *testing.T) {
		stats := &entity.UserStats{Bankroll: 500, CurrentStreak: -4}
		ApplyOutcome(stats, entity.PickStatusWon, 50, 45)

		assert.Equal(t, 1, stats.CurrentStreak)
	})

	t.Run("push only counts the decision", func(t *testing.T) {
		stats := &entity.UserStats{Bankroll: 1000, CurrentStreak: 2}
		ApplyOutcome(stats, entity.PickStatusPush, 100, 90.91)

		assert.Equal(t, 1, stats.PushCount)
		assert.Equal(t, 2, stats.CurrentStreak)
		assert.InDelta(t, 1000, stats.Bankroll, 0.001)
	})
}

func TestStakeFor(t *testing.T) {
	assert.InDelta(t, 100, StakeFor(1000), 0.001)
	assert.Zero(t, StakeFor(0))
	assert.Zero(t, StakeFor(-50))
}
