package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/internal/worker/grading"
	"gary-picks-engine/internal/worker/repository"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/odds"
	"gary-picks-engine/pkg/telegram"
	"gary-picks-engine/pkg/utils"
)

// ResultsCheckStrategy settles pending game picks against final scores. The
// ESPN scoreboard is the primary source and TheSportsDB covers games ESPN
// does not list. Settled picks cascade into user decisions, stats, wagers,
// and notifications.
type ResultsCheckStrategy struct {
	logger           *logger.Logger
	pickRepo         repository.PickRepository
	decisionRepo     repository.UserDecisionRepository
	statsRepo        repository.UserStatsRepository
	wagerRepo        repository.WagerRepository
	notificationRepo repository.NotificationRepository
	scoreboardRepo   repository.ScoreboardRepository
	sportsDBRepo     repository.SportsDBRepository
	telegramNotifier telegram.Notifier
}

// ResultsCheckResult summarizes one settlement run.
type ResultsCheckResult struct {
	Checked   int `json:"checked"`
	Settled   int `json:"settled"`
	Postponed int `json:"postponed"`
	Unsettled int `json:"unsettled"`
}

// NewResultsCheckStrategy creates a new ResultsCheckStrategy.
func NewResultsCheckStrategy(
	log *logger.Logger,
	pickRepo repository.PickRepository,
	decisionRepo repository.UserDecisionRepository,
	statsRepo repository.UserStatsRepository,
	wagerRepo repository.WagerRepository,
	notificationRepo repository.NotificationRepository,
	scoreboardRepo repository.ScoreboardRepository,
	sportsDBRepo repository.SportsDBRepository,
	telegramNotifier telegram.Notifier,
) JobExecutionStrategy {
	return &ResultsCheckStrategy{
		logger:           log,
		pickRepo:         pickRepo,
		decisionRepo:     decisionRepo,
		statsRepo:        statsRepo,
		wagerRepo:        wagerRepo,
		notificationRepo: notificationRepo,
		scoreboardRepo:   scoreboardRepo,
		sportsDBRepo:     sportsDBRepo,
		telegramNotifier: telegramNotifier,
	}
}

// GetType returns the job type this strategy handles.
func (s *ResultsCheckStrategy) GetType() entity.JobType {
	return entity.JobTypeResultsCheck
}

// Execute grades every pending pick whose game has started.
func (s *ResultsCheckStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	picks, err := s.pickRepo.FindPendingStartedBefore(ctx, utils.TimeNowET())
	if err != nil {
		s.logger.Error("Failed to load pending picks", logger.ErrorField(err), logger.Field("job_id", job.ID))
		return "", fmt.Errorf("failed to load pending picks: %w", err)
	}

	result := ResultsCheckResult{Checked: len(picks)}
	if len(picks) == 0 {
		return "no pending picks", nil
	}

	scoreboards := make(map[string][]dto.GameResult)
	var digest []string

	for i := range picks {
		pick := &picks[i]

		gameResult, found := s.findGameResult(ctx, scoreboards, pick)
		if !found {
			result.Unsettled++
			continue
		}

		switch {
		case gameResult.Postponed:
			s.settlePick(ctx, pick, entity.PickStatusPostponed)
			result.Postponed++
		case gameResult.Completed:
			status := s.gradePick(pick, gameResult)
			s.settlePick(ctx, pick, status)
			digest = append(digest, telegram.FormatSettlementMessage(pick.Sport, pick.AwayTeam+" @ "+pick.HomeTeam, pick.PickTeam, string(status)))
			result.Settled++
		default:
			result.Unsettled++
		}
	}

	if len(digest) > 0 && s.telegramNotifier != nil {
		if err := s.telegramNotifier.SendMessage(strings.Join(digest, "\n")); err != nil {
			s.logger.Warn("Failed to send settlement digest", logger.ErrorField(err))
		}
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(resultJSON), nil
}

// findGameResult locates the final for a pick, querying each sport+day
// scoreboard at most once and falling back to TheSportsDB per pick.
func (s *ResultsCheckStrategy) findGameResult(ctx context.Context, scoreboards map[string][]dto.GameResult, pick *entity.Pick) (dto.GameResult, bool) {
	key := pick.Sport + "|" + pick.GameTime.Format("20060102")
	results, ok := scoreboards[key]
	if !ok {
		fetched, err := s.scoreboardRepo.GetGameResults(ctx, pick.Sport, pick.GameTime)
		if err != nil {
			s.logger.Warn("Failed to fetch scoreboard", logger.ErrorField(err), logger.StringField("sport", pick.Sport))
			fetched = nil
		}
		scoreboards[key] = fetched
		results = fetched
	}

	for _, r := range results {
		if teamsMatch(r.HomeTeam, pick.HomeTeam) && teamsMatch(r.AwayTeam, pick.AwayTeam) {
			return r, true
		}
	}

	fallback, err := s.sportsDBRepo.FindEventResult(ctx, pick.Sport, pick.HomeTeam, pick.AwayTeam, pick.GameTime)
	if err != nil {
		if !errors.Is(err, repository.ErrStatUnavailable) {
			s.logger.Warn("Scoreboard fallback failed", logger.ErrorField(err), logger.StringField("home_team", pick.HomeTeam))
		}
		return dto.GameResult{}, false
	}
	return *fallback, true
}

func (s *ResultsCheckStrategy) gradePick(pick *entity.Pick, gameResult dto.GameResult) entity.PickStatus {
	if pick.BetType == entity.BetTypeSpread && pick.Spread != nil {
		return grading.GradeSpread(pick.PickTeam, pick.HomeTeam, *pick.Spread, gameResult.HomeScore, gameResult.AwayScore)
	}
	return grading.GradeMoneyline(pick.PickTeam, pick.HomeTeam, gameResult.HomeScore, gameResult.AwayScore)
}

// settlePick writes the pick status and cascades it into every pending
// decision on the pick. A failure on one decision does not stop the rest.
func (s *ResultsCheckStrategy) settlePick(ctx context.Context, pick *entity.Pick, status entity.PickStatus) {
	now := utils.TimeNowET()
	pick.Status = status
	pick.SettledAt = &now
	if err := s.pickRepo.Update(ctx, pick); err != nil {
		s.logger.Error("Failed to update pick", logger.ErrorField(err), logger.Field("pick_id", pick.ID))
		return
	}

	decisions, err := s.decisionRepo.FindPendingByPickID(ctx, pick.ID)
	if err != nil {
		s.logger.Error("Failed to load decisions for pick", logger.ErrorField(err), logger.Field("pick_id", pick.ID))
		return
	}

	for i := range decisions {
		if err := s.settleDecision(ctx, pick, &decisions[i], now); err != nil {
			s.logger.Error("Failed to settle decision",
				logger.ErrorField(err),
				logger.Field("decision_id", decisions[i].ID),
				logger.StringField("user_id", decisions[i].UserID),
			)
		}
	}
}

func (s *ResultsCheckStrategy) settleDecision(ctx context.Context, pick *entity.Pick, decision *entity.UserDecision, settledAt time.Time) error {
	outcome := grading.DecisionOutcome(decision.Decision, pick.Status)

	decision.Outcome = outcome
	decision.SettledAt = &settledAt
	if err := s.decisionRepo.Update(ctx, decision); err != nil {
		return fmt.Errorf("update decision: %w", err)
	}

	if outcome == entity.PickStatusPostponed {
		return nil
	}

	stats, err := s.statsRepo.FindOrCreate(ctx, decision.UserID)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	stake := grading.StakeFor(stats.Bankroll)
	profit := 0.0
	if outcome == entity.PickStatusWon && stake > 0 {
		profit, err = odds.ProfitOnWin(stake, pick.OddsAmerican)
		if err != nil {
			s.logger.Warn("Bad odds on settled pick", logger.ErrorField(err), logger.Field("pick_id", pick.ID))
			profit = 0
		}
	}

	grading.ApplyOutcome(stats, outcome, stake, profit)
	if err := s.statsRepo.Update(ctx, stats); err != nil {
		return fmt.Errorf("update stats: %w", err)
	}

	// The amount must be the stake the payout math used, taken from the
	// bankroll before ApplyOutcome moved it. Leaving it unset would let the
	// insert trigger stamp 10% of the post-settlement bankroll instead.
	wager := &entity.Wager{
		UserID:       decision.UserID,
		PickID:       pick.ID,
		Amount:       stake,
		OddsAmerican: pick.OddsAmerican,
		Profit:       profit,
		Result:       outcome,
	}
	if err := s.wagerRepo.Create(ctx, wager); err != nil {
		return fmt.Errorf("create wager: %w", err)
	}

	notification := &entity.Notification{
		UserID:  decision.UserID,
		Type:    "pick_settled",
		Title:   fmt.Sprintf("Your %s play settled: %s", pick.Sport, outcome),
		Message: fmt.Sprintf("%s @ %s finished. Gary took %s and your %s graded %s.", pick.AwayTeam, pick.HomeTeam, pick.PickTeam, decision.Decision, outcome),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

// teamsMatch compares team names loosely. Providers disagree on short forms
// like "LA Clippers" versus "Los Angeles Clippers".
func teamsMatch(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
