// Package grading contains the pure settlement rules for picks, props, and
// user decisions. Everything here is deterministic so it can be tested
// without any provider involved.
package grading

import (
	"gary-picks-engine/internal/entity"
)

// GradeMoneyline grades a moneyline pick from the final score. A tied final
// is a push.
func GradeMoneyline(pickTeam, homeTeam string, homeScore, awayScore float64) entity.PickStatus {
	if homeScore == awayScore {
		return entity.PickStatusPush
	}

	pickedHome := pickTeam == homeTeam
	homeWon := homeScore > awayScore

	if pickedHome == homeWon {
		return entity.PickStatusWon
	}
	return entity.PickStatusLost
}

// GradeSpread grades a spread pick. The spread is expressed from the picked
// team's perspective, so the pick covers when margin plus spread is positive
// and pushes when it lands exactly on the number.
func GradeSpread(pickTeam, homeTeam string, spread, homeScore, awayScore float64) entity.PickStatus {
	margin := homeScore - awayScore
	if pickTeam != homeTeam {
		margin = -margin
	}

	adjusted := margin + spread
	switch {
	case adjusted > 0:
		return entity.PickStatusWon
	case adjusted < 0:
		return entity.PickStatusLost
	default:
		return entity.PickStatusPush
	}
}

// GradeProp grades an over/under prop against the resolved actual value.
// Landing exactly on the line is a push.
func GradeProp(side entity.PropSide, line, actual float64) entity.PickStatus {
	if actual == line {
		return entity.PickStatusPush
	}

	over := actual > line
	if (side == entity.PropSideOver) == over {
		return entity.PickStatusWon
	}
	return entity.PickStatusLost
}

// DecisionOutcome maps a settled pick status onto a user's decision. A bet
// inherits the pick result, a fade inverts it, and a push stays a push either
// way.
func DecisionOutcome(decision entity.DecisionType, pickStatus entity.PickStatus) entity.PickStatus {
	switch pickStatus {
	case entity.PickStatusPush, entity.PickStatusPostponed, entity.PickStatusPending:
		return pickStatus
	}

	if decision == entity.DecisionFade {
		if pickStatus == entity.PickStatusWon {
			return entity.PickStatusLost
		}
		return entity.PickStatusWon
	}
	return pickStatus
}

// ApplyOutcome mutates a stats row for one settled decision. The streak
// resets direction on the first result that breaks it and pushes leave it
// untouched. Profit and loss move the bankroll by the wagered stake.
func ApplyOutcome(stats *entity.UserStats, outcome entity.PickStatus, stake, profit float64) {
	switch outcome {
	case entity.PickStatusWon:
		stats.TotalDecisions++
		stats.WinCount++
		if stats.CurrentStreak < 0 {
			stats.CurrentStreak = 0
		}
		stats.CurrentStreak++
		stats.Bankroll += profit
	case entity.PickStatusLost:
		stats.TotalDecisions++
		stats.LossCount++
		if stats.CurrentStreak > 0 {
			stats.CurrentStreak = 0
		}
		stats.CurrentStreak--
		stats.Bankroll -= stake
	case entity.PickStatusPush:
		stats.TotalDecisions++
		stats.PushCount++
	}
}

// StakeFraction is the share of the current bankroll risked per play. The
// wagers table trigger uses the same figure for the stored amount.
const StakeFraction = 0.1

// StakeFor returns the stake for the next play given the current bankroll.
// A busted bankroll stakes nothing.
func StakeFor(bankroll float64) float64 {
	if bankroll <= 0 {
		return 0
	}
	return bankroll * StakeFraction
}
