package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/config"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/internal/worker/repository"
	"gary-picks-engine/pkg/common"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/telegram"
	"gary-picks-engine/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// PickGenerationService consumes per-sport generation tasks from the pick
// generation stream and turns the day's odds board into stored picks.
type PickGenerationService interface {
	ProcessTask(ctx context.Context)
	ProcessRetries(ctx context.Context)
	Generate(ctx context.Context, sport, league string, maxPicks int) error
}

type pickGenerationService struct {
	cfg             *config.Config
	log             *logger.Logger
	redisClient     *redis.Client
	oddsRepo        repository.OddsRepository
	newsSummaryRepo repository.NewsSummaryRepository
	pickRepo        repository.PickRepository
	aiRepo          repository.AIRepository
	providerName    string
	telegramBot     telegram.Notifier
}

// NewPickGenerationService creates a new PickGenerationService.
func NewPickGenerationService(
	cfg *config.Config,
	log *logger.Logger,
	redisClient *redis.Client,
	oddsRepo repository.OddsRepository,
	newsSummaryRepo repository.NewsSummaryRepository,
	pickRepo repository.PickRepository,
	aiRepo repository.AIRepository,
	providerName string,
	telegramBot telegram.Notifier,
) PickGenerationService {
	return &pickGenerationService{
		cfg:             cfg,
		log:             log,
		redisClient:     redisClient,
		oddsRepo:        oddsRepo,
		newsSummaryRepo: newsSummaryRepo,
		pickRepo:        pickRepo,
		aiRepo:          aiRepo,
		providerName:    providerName,
		telegramBot:     telegramBot,
	}
}

func (s *pickGenerationService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamPickGeneration, ">"}, // ">" means only new messages
		Count:    1,
		Block:    2 * time.Second, // Block for 2 seconds to allow graceful shutdown
	}).Result()
	if err != nil {
		// Ignore context cancellation and timeout errors, as they are expected during shutdown or idle periods.
		if err == context.Canceled || err == redis.Nil {
			return
		}
		s.log.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]

	taskData, ok := message.Values["payload"].(string)
	if !ok {
		s.log.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", message.ID))
		return
	}

	var streamData dto.StreamDataPickGeneration
	if err := json.Unmarshal([]byte(taskData), &streamData); err != nil {
		s.log.Error("Failed to unmarshal task data", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}

	s.log.Debug("Processing pick generation task", logger.StringField("sport", streamData.Sport))

	if err := s.Generate(ctx, streamData.Sport, streamData.League, streamData.MaxPicks); err != nil {
		s.log.Error("Failed to generate picks", logger.ErrorField(err), logger.Field("message_id", message.ID), logger.StringField("sport", streamData.Sport))
		return
	}

	if err := s.AckNDel(ctx, common.RedisStreamPickGeneration, message.ID); err != nil {
		s.log.Error("Failed to acknowledge and delete pick generation task", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}

	s.log.Debug("Pick generation task processed successfully", logger.StringField("sport", streamData.Sport))
}

// Generate fetches the board for one sport, asks the model for picks, and
// stores anything new.
func (s *pickGenerationService) Generate(ctx context.Context, sport, league string, maxPicks int) error {
	// Retried tasks must not blow past the day's budget with a second model
	// call; picks already stored today count against maxPicks.
	if maxPicks > 0 {
		from, to := todayWindow()
		existing, err := s.pickRepo.CountForWindow(ctx, sport, from, to)
		if err != nil {
			s.log.Warn("Failed to count today's picks", logger.ErrorField(err), logger.StringField("sport", sport))
		} else if existing >= int64(maxPicks) {
			s.log.Info("Pick budget for the day already used",
				logger.StringField("sport", sport),
				logger.IntField("existing", int(existing)),
				logger.IntField("max_picks", maxPicks),
			)
			return nil
		}
	}

	games, err := s.oddsRepo.GetGameOdds(ctx, sport)
	if err != nil {
		s.log.Error("Failed to get game odds", logger.ErrorField(err), logger.StringField("sport", sport))
		return err
	}

	if len(games) == 0 {
		s.log.Info("No games on the board", logger.StringField("sport", sport))
		return nil
	}

	summaries, err := s.newsSummaryRepo.FindLatestForTeams(ctx, teamNames(games))
	if err != nil {
		s.log.Warn("Failed to load news summaries, generating without context", logger.ErrorField(err), logger.StringField("sport", sport))
	}

	generated, err := s.aiRepo.GeneratePicks(ctx, sport, games, summaries, maxPicks)
	if err != nil {
		s.log.Error("Failed to generate picks", logger.ErrorField(err), logger.StringField("sport", sport))
		return err
	}

	gamesByEvent := make(map[string]dto.GameOdds, len(games))
	for _, game := range games {
		gamesByEvent[game.EventID] = game
	}

	created := 0
	for _, generatedPick := range generated.Picks {
		if maxPicks > 0 && created >= maxPicks {
			break
		}

		pick, err := s.buildPick(sport, league, generatedPick, gamesByEvent)
		if err != nil {
			s.log.Warn("Dropping invalid generated pick", logger.ErrorField(err), logger.StringField("event_id", generatedPick.EventID))
			continue
		}

		wasCreated, err := s.pickRepo.CreateIgnoreConflict(ctx, pick)
		if err != nil {
			s.log.Error("Failed to store pick", logger.ErrorField(err), logger.StringField("event_id", pick.EventID))
			continue
		}
		if !wasCreated {
			continue
		}
		created++

		if s.telegramBot != nil {
			msg := telegram.FormatPickAlertMessage(
				utils.TimeNowET(),
				pick.Sport,
				pick.AwayTeam+" @ "+pick.HomeTeam,
				pick.PickTeam,
				string(pick.BetType),
				pick.OddsAmerican,
				pick.ConfidenceScore,
			)
			if err := s.telegramBot.SendMessage(msg); err != nil {
				s.log.Warn("Failed to send pick alert", logger.ErrorField(err), logger.StringField("event_id", pick.EventID))
			}
		}
	}

	s.log.Info("Pick generation completed",
		logger.StringField("sport", sport),
		logger.IntField("generated", len(generated.Picks)),
		logger.IntField("created", created),
	)

	return nil
}

// buildPick validates a model answer against the actual board and fills the
// odds the model does not control.
func (s *pickGenerationService) buildPick(sport, league string, generatedPick dto.GeneratedPick, gamesByEvent map[string]dto.GameOdds) (*entity.Pick, error) {
	game, ok := gamesByEvent[generatedPick.EventID]
	if !ok {
		return nil, fmt.Errorf("unknown event id %q", generatedPick.EventID)
	}

	pickedHome := strings.EqualFold(generatedPick.PickTeam, game.HomeTeam)
	pickedAway := strings.EqualFold(generatedPick.PickTeam, game.AwayTeam)
	if !pickedHome && !pickedAway {
		return nil, fmt.Errorf("pick team %q is not in event %q", generatedPick.PickTeam, generatedPick.EventID)
	}

	pick := &entity.Pick{
		Sport:           sport,
		League:          league,
		EventID:         game.EventID,
		HomeTeam:        game.HomeTeam,
		AwayTeam:        game.AwayTeam,
		PickTeam:        generatedPick.PickTeam,
		BetType:         entity.BetType(generatedPick.BetType),
		ConfidenceScore: generatedPick.ConfidenceScore,
		Rationale:       generatedPick.Rationale,
		Status:          entity.PickStatusPending,
		GameTime:        game.GameTime,
		Provider:        s.providerName,
	}

	switch pick.BetType {
	case entity.BetTypeMoneyline:
		if pickedHome {
			pick.OddsAmerican = game.HomeML
		} else {
			pick.OddsAmerican = game.AwayML
		}
	case entity.BetTypeSpread:
		spread := game.HomeSpread
		if pickedAway {
			spread = -game.HomeSpread
		}
		if generatedPick.Spread != nil {
			spread = *generatedPick.Spread
		}
		pick.Spread = &spread
		pick.OddsAmerican = game.SpreadPrice
	default:
		return nil, fmt.Errorf("unknown bet type %q", generatedPick.BetType)
	}

	if pick.OddsAmerican == 0 {
		return nil, fmt.Errorf("no odds on the board for %s %s", generatedPick.EventID, generatedPick.BetType)
	}

	gameJSON, err := json.Marshal(game)
	if err == nil {
		pick.Data = gameJSON
	}

	return pick, nil
}

func (s *pickGenerationService) AckNDel(ctx context.Context, streamName string, messageID string) error {
	if err := s.redisClient.XAck(ctx, streamName, common.RedisStreamGroup, messageID).Err(); err != nil {
		s.log.Error("Failed to acknowledge pick generation task", logger.ErrorField(err), logger.Field("message_id", messageID))
		return err
	}
	if err := s.redisClient.XDel(ctx, streamName, messageID).Err(); err != nil {
		s.log.Error("Failed to delete pick generation task", logger.ErrorField(err), logger.Field("message_id", messageID))
		return err
	}
	return nil
}

// ProcessRetries reclaims stuck pick generation tasks, alerting and dropping
// any that ran out of retries.
func (s *pickGenerationService) ProcessRetries(ctx context.Context) {
	msgs, _, err := s.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   common.RedisStreamPickGeneration,
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer + "-retry",
		MinIdle:  s.cfg.Executor.RedisStreamPickGenerationMaxIdleDuration,
		Start:    "0",
		Count:    1,
	}).Result()

	if err != nil {
		s.log.Error("Failed to claim pick generation task on retry", logger.ErrorField(err))
		return
	}

	if len(msgs) == 0 {
		s.log.Debug("Retry No pending messages found", logger.StringField("stream", common.RedisStreamPickGeneration))
		return
	}

	pendingInfo, err := s.redisClient.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: common.RedisStreamPickGeneration,
		Group:  common.RedisStreamGroup,
		Start:  msgs[0].ID,
		End:    msgs[0].ID,
		Count:  1,
	}).Result()

	if err != nil {
		s.log.Error("Failed to get pending info", logger.ErrorField(err))
		return
	}

	if len(pendingInfo) == 0 {
		s.log.Warn("pending msg not found, but exist on xautoclaim",
			logger.StringField("stream", common.RedisStreamPickGeneration),
			logger.StringField("message_id", msgs[0].ID))
		return
	}

	msg := msgs[0]
	taskData, ok := msg.Values["payload"].(string)
	if !ok {
		s.log.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", msg.ID))
		return
	}

	var streamData dto.StreamDataPickGeneration
	if err := json.Unmarshal([]byte(taskData), &streamData); err != nil {
		s.log.Error("Failed to unmarshal task data", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		return
	}

	if pendingInfo[0].RetryCount >= int64(s.cfg.Executor.RedisStreamPickGenerationMaxRetry) {
		s.log.Error("pending msg retry count exceeded",
			logger.StringField("stream", common.RedisStreamPickGeneration),
			logger.StringField("message_id", msg.ID),
			logger.StringField("sport", streamData.Sport),
			logger.IntField("retry_count", int(pendingInfo[0].RetryCount)),
			logger.IntField("max_retry", s.cfg.Executor.RedisStreamPickGenerationMaxRetry),
		)
		msgTelegram := telegram.FormatErrorAlertMessage(utils.TimeNowET(), fmt.Sprintf("Pick generation retry count exceeded for sport %s", streamData.Sport))
		if err := s.telegramBot.SendMessage(msgTelegram); err != nil {
			s.log.Error("Failed to send telegram message retry exceeded", logger.ErrorField(err), logger.StringField("sport", streamData.Sport))
		}
		if err := s.AckNDel(ctx, common.RedisStreamPickGeneration, msg.ID); err != nil {
			s.log.Error("Failed to acknowledge and delete pick generation task", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		}
		return
	}

	if err := s.Generate(ctx, streamData.Sport, streamData.League, streamData.MaxPicks); err != nil {
		s.log.Error("Failed to generate picks on retry", logger.ErrorField(err), logger.Field("message_id", msg.ID), logger.StringField("sport", streamData.Sport))
		return
	}

	if err := s.AckNDel(ctx, common.RedisStreamPickGeneration, msg.ID); err != nil {
		s.log.Error("Failed to acknowledge and delete pick generation task", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		return
	}

	s.log.Info("Retry pick generation task processed successfully", logger.StringField("sport", streamData.Sport))
}

// todayWindow bounds the current Eastern-time day.
func todayWindow() (time.Time, time.Time) {
	now := utils.TimeNowET()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return from, from.Add(24 * time.Hour)
}

// teamNames collects the distinct team names across the slate.
func teamNames(games []dto.GameOdds) []string {
	seen := make(map[string]bool, len(games)*2)
	var teams []string
	for _, game := range games {
		for _, team := range []string{game.HomeTeam, game.AwayTeam} {
			if !seen[team] {
				seen[team] = true
				teams = append(teams, team)
			}
		}
	}
	return teams
}
