package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/pkg/common"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/redis"

	goRedis "github.com/redis/go-redis/v9"
)

// PickGenerationStrategy fans one generation job out into a stream task per
// sport, so a slow provider for one league never blocks the others.
type PickGenerationStrategy struct {
	logger      *logger.Logger
	redisClient *redis.Client
}

// PickGenerationPayload is the job payload for pick generation.
type PickGenerationPayload struct {
	Sports   []SportTarget `json:"sports"`
	MaxPicks int           `json:"max_picks"`
}

// SportTarget names one sport and league to generate picks for.
type SportTarget struct {
	Sport  string `json:"sport"`
	League string `json:"league"`
}

// PickGenerationResult reports per-sport fan-out status.
type PickGenerationResult struct {
	Sport   string `json:"sport"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NewPickGenerationStrategy creates a new PickGenerationStrategy.
func NewPickGenerationStrategy(log *logger.Logger, redisClient *redis.Client) JobExecutionStrategy {
	return &PickGenerationStrategy{logger: log, redisClient: redisClient}
}

// GetType returns the job type this strategy handles.
func (s *PickGenerationStrategy) GetType() entity.JobType {
	return entity.JobTypePickGeneration
}

// Execute enqueues one pick generation task per configured sport.
func (s *PickGenerationStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var payload PickGenerationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		s.logger.Error("Failed to unmarshal job payload", logger.ErrorField(err), logger.Field("job_id", job.ID))
		return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
	}

	if len(payload.Sports) == 0 {
		return "", fmt.Errorf("pick generation job has no sports configured")
	}

	isSuccess := false
	var results []PickGenerationResult
	for _, target := range payload.Sports {
		streamData := &dto.StreamDataPickGeneration{
			Sport:    target.Sport,
			League:   target.League,
			MaxPicks: payload.MaxPicks,
		}

		streamDataJSON, err := json.Marshal(streamData)
		if err != nil {
			s.logger.Error("Failed to marshal pick generation payload", logger.ErrorField(err))
			results = append(results, PickGenerationResult{Sport: target.Sport, Success: false, Error: err.Error()})
			continue
		}

		if err := s.redisClient.XAdd(ctx, &goRedis.XAddArgs{
			Stream: common.RedisStreamPickGeneration,
			Values: map[string]interface{}{"payload": streamDataJSON},
		}).Err(); err != nil {
			s.logger.Error("Failed to enqueue pick generation task", logger.ErrorField(err), logger.StringField("sport", target.Sport))
			results = append(results, PickGenerationResult{Sport: target.Sport, Success: false, Error: err.Error()})
			continue
		}

		isSuccess = true
		results = append(results, PickGenerationResult{Sport: target.Sport, Success: true})
	}

	resultJSON, err := json.Marshal(results)
	if err != nil {
		s.logger.Error("Failed to marshal results", logger.ErrorField(err))
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	if isSuccess {
		return string(resultJSON), nil
	}

	return string(resultJSON), fmt.Errorf("failed to enqueue any pick generation task")
}
