package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/internal/worker/repository"
	"gary-picks-engine/pkg/common"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/redis"
	"gary-picks-engine/pkg/utils"

	goRedis "github.com/redis/go-redis/v9"
)

// PropResultsStrategy fans pending prop picks whose games have started out
// into one stream task each. Resolution goes through API and LLM providers,
// so each prop is retried independently.
type PropResultsStrategy struct {
	logger       *logger.Logger
	redisClient  *redis.Client
	propPickRepo repository.PropPickRepository
}

// PropResultsResult reports per-prop fan-out status.
type PropResultsResult struct {
	PropPickID uint   `json:"prop_pick_id"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// NewPropResultsStrategy creates a new PropResultsStrategy.
func NewPropResultsStrategy(log *logger.Logger, redisClient *redis.Client, propPickRepo repository.PropPickRepository) JobExecutionStrategy {
	return &PropResultsStrategy{logger: log, redisClient: redisClient, propPickRepo: propPickRepo}
}

// GetType returns the job type this strategy handles.
func (s *PropResultsStrategy) GetType() entity.JobType {
	return entity.JobTypePropResults
}

// Execute enqueues one resolution task per pending prop pick.
func (s *PropResultsStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	propPicks, err := s.propPickRepo.FindPendingStartedBefore(ctx, utils.TimeNowET())
	if err != nil {
		s.logger.Error("Failed to load pending prop picks", logger.ErrorField(err), logger.Field("job_id", job.ID))
		return "", fmt.Errorf("failed to load pending prop picks: %w", err)
	}

	if len(propPicks) == 0 {
		return "no pending prop picks", nil
	}

	isSuccess := false
	var results []PropResultsResult
	for _, propPick := range propPicks {
		streamData := &dto.StreamDataPropResult{PropPickID: propPick.ID}

		streamDataJSON, err := json.Marshal(streamData)
		if err != nil {
			s.logger.Error("Failed to marshal prop result payload", logger.ErrorField(err))
			results = append(results, PropResultsResult{PropPickID: propPick.ID, Success: false, Error: err.Error()})
			continue
		}

		if err := s.redisClient.XAdd(ctx, &goRedis.XAddArgs{
			Stream: common.RedisStreamPropResults,
			Values: map[string]interface{}{"payload": streamDataJSON},
		}).Err(); err != nil {
			s.logger.Error("Failed to enqueue prop result task", logger.ErrorField(err), logger.Field("prop_pick_id", propPick.ID))
			results = append(results, PropResultsResult{PropPickID: propPick.ID, Success: false, Error: err.Error()})
			continue
		}

		isSuccess = true
		results = append(results, PropResultsResult{PropPickID: propPick.ID, Success: true})
	}

	resultJSON, err := json.Marshal(results)
	if err != nil {
		s.logger.Error("Failed to marshal results", logger.ErrorField(err))
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	if isSuccess {
		return string(resultJSON), nil
	}

	return string(resultJSON), fmt.Errorf("failed to enqueue any prop result task")
}
