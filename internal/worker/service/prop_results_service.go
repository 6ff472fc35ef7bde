package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/config"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/internal/worker/grading"
	"gary-picks-engine/internal/worker/repository"
	"gary-picks-engine/internal/worker/resolver"
	"gary-picks-engine/pkg/common"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/telegram"
	"gary-picks-engine/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// PropResultsService consumes per-prop resolution tasks, walks the stat
// provider chain, and grades the prop when the actual value comes back.
type PropResultsService interface {
	ProcessTask(ctx context.Context)
	ProcessRetries(ctx context.Context)
	ResolveProp(ctx context.Context, propPickID uint) error
}

type propResultsService struct {
	cfg          *config.Config
	log          *logger.Logger
	redisClient  *redis.Client
	propPickRepo repository.PropPickRepository
	statResolver *resolver.Resolver
	telegramBot  telegram.Notifier
}

// NewPropResultsService creates a new PropResultsService.
func NewPropResultsService(
	cfg *config.Config,
	log *logger.Logger,
	redisClient *redis.Client,
	propPickRepo repository.PropPickRepository,
	statResolver *resolver.Resolver,
	telegramBot telegram.Notifier,
) PropResultsService {
	return &propResultsService{
		cfg:          cfg,
		log:          log,
		redisClient:  redisClient,
		propPickRepo: propPickRepo,
		statResolver: statResolver,
		telegramBot:  telegramBot,
	}
}

func (s *propResultsService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamPropResults, ">"}, // ">" means only new messages
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

	var streamData dto.StreamDataPropResult
	if err := json.Unmarshal([]byte(taskData), &streamData); err != nil {
		s.log.Error("Failed to unmarshal task data", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}

	s.log.Debug("Processing prop result task", logger.Field("prop_pick_id", streamData.PropPickID))

	if err := s.ResolveProp(ctx, streamData.PropPickID); err != nil {
		s.log.Error("Failed to resolve prop", logger.ErrorField(err), logger.Field("message_id", message.ID), logger.Field("prop_pick_id", streamData.PropPickID))
		return
	}

	if err := s.AckNDel(ctx, common.RedisStreamPropResults, message.ID); err != nil {
		s.log.Error("Failed to acknowledge and delete prop result task", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}
}

// ResolveProp resolves and grades one prop pick. A game still in progress or
// a stat nobody can answer yet leaves the prop pending for the next run.
func (s *propResultsService) ResolveProp(ctx context.Context, propPickID uint) error {
	propPick, err := s.propPickRepo.FindByID(ctx, propPickID)
	if err != nil {
		return fmt.Errorf("failed to load prop pick: %w", err)
	}

	if propPick.Status != entity.PickStatusPending {
		s.log.Debug("Prop pick already settled", logger.Field("prop_pick_id", propPickID))
		return nil
	}

	query := dto.StatQuery{
		Sport:      propPick.Sport,
		PlayerName: propPick.PlayerName,
		Team:       propPick.Team,
		Opponent:   propPick.Opponent,
		StatType:   propPick.StatType,
		GameTime:   propPick.GameTime,
	}

	result, err := s.statResolver.Resolve(ctx, query)
	if err != nil {
		if errors.Is(err, resolver.ErrGameNotFinished) || errors.Is(err, repository.ErrStatUnavailable) {
			s.log.Info("Prop not resolvable yet, staying pending",
				logger.Field("prop_pick_id", propPickID),
				logger.StringField("player", propPick.PlayerName),
			)
			return nil
		}
		return fmt.Errorf("failed to resolve stat: %w", err)
	}

	status := grading.GradeProp(propPick.Side, propPick.Line, result.Value)
	now := utils.TimeNowET()

	propPick.Status = status
	propPick.ActualValue = &result.Value
	propPick.ResultSource = result.Source
	propPick.SettledAt = &now

	if err := s.propPickRepo.Update(ctx, propPick); err != nil {
		return fmt.Errorf("failed to update prop pick: %w", err)
	}

	s.log.Info("Prop pick settled",
		logger.Field("prop_pick_id", propPickID),
		logger.StringField("player", propPick.PlayerName),
		logger.StringField("stat_type", propPick.StatType),
		logger.Float64Field("line", propPick.Line),
		logger.Float64Field("actual", result.Value),
		logger.StringField("status", string(status)),
		logger.StringField("source", result.Source),
	)

	return nil
}

func (s *propResultsService) AckNDel(ctx context.Context, streamName string, messageID string) error {
	if err := s.redisClient.XAck(ctx, streamName, common.RedisStreamGroup, messageID).Err(); err != nil {
		s.log.Error("Failed to acknowledge prop result task", logger.ErrorField(err), logger.Field("message_id", messageID))
		return err
	}
	if err := s.redisClient.XDel(ctx, streamName, messageID).Err(); err != nil {
		s.log.Error("Failed to delete prop result task", logger.ErrorField(err), logger.Field("message_id", messageID))
		return err
	}
	return nil
}

// ProcessRetries reclaims stuck prop resolution tasks, alerting and dropping
// any that ran out of retries.
func (s *propResultsService) ProcessRetries(ctx context.Context) {
	msgs, _, err := s.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   common.RedisStreamPropResults,
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer + "-retry",
		MinIdle:  s.cfg.Executor.RedisStreamPropResultsMaxIdleDuration,
		Start:    "0",
		Count:    1,
	}).Result()

	if err != nil {
		s.log.Error("Failed to claim prop result task on retry", logger.ErrorField(err))
		return
	}

	if len(msgs) == 0 {
		s.log.Debug("Retry No pending messages found", logger.StringField("stream", common.RedisStreamPropResults))
		return
	}

	pendingInfo, err := s.redisClient.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: common.RedisStreamPropResults,
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
			logger.StringField("stream", common.RedisStreamPropResults),
			logger.StringField("message_id", msgs[0].ID))
		return
	}

	msg := msgs[0]
	taskData, ok := msg.Values["payload"].(string)
	if !ok {
		s.log.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", msg.ID))
		return
	}

	var streamData dto.StreamDataPropResult
	if err := json.Unmarshal([]byte(taskData), &streamData); err != nil {
		s.log.Error("Failed to unmarshal task data", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		return
	}

	if pendingInfo[0].RetryCount >= int64(s.cfg.Executor.RedisStreamPropResultsMaxRetry) {
		s.log.Error("pending msg retry count exceeded",
			logger.StringField("stream", common.RedisStreamPropResults),
			logger.StringField("message_id", msg.ID),
			logger.Field("prop_pick_id", streamData.PropPickID),
			logger.IntField("retry_count", int(pendingInfo[0].RetryCount)),
			logger.IntField("max_retry", s.cfg.Executor.RedisStreamPropResultsMaxRetry),
		)
		msgTelegram := telegram.FormatErrorAlertMessage(utils.TimeNowET(), fmt.Sprintf("Prop result retry count exceeded for prop pick %d", streamData.PropPickID))
		if err := s.telegramBot.SendMessage(msgTelegram); err != nil {
			s.log.Error("Failed to send telegram message retry exceeded", logger.ErrorField(err), logger.Field("prop_pick_id", streamData.PropPickID))
		}
		if err := s.AckNDel(ctx, common.RedisStreamPropResults, msg.ID); err != nil {
			s.log.Error("Failed to acknowledge and delete prop result task", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		}
		return
	}

	if err := s.ResolveProp(ctx, streamData.PropPickID); err != nil {
		s.log.Error("Failed to resolve prop on retry", logger.ErrorField(err), logger.Field("message_id", msg.ID), logger.Field("prop_pick_id", streamData.PropPickID))
		return
	}

	if err := s.AckNDel(ctx, common.RedisStreamPropResults, msg.ID); err != nil {
		s.log.Error("Failed to acknowledge and delete prop result task", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		return
	}

	s.log.Info("Retry prop result task processed successfully", logger.Field("prop_pick_id", streamData.PropPickID))
}
