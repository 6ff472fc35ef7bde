package service

import (
	"context"

	"gary-picks-engine/internal/api/dto"
	"gary-picks-engine/internal/api/repository"
	"gary-picks-engine/internal/entity"
	"gary-picks-engine/pkg/logger"
)

// JobRunService defines the interface for reading job run history.
type JobRunService interface {
	GetJobRunByID(ctx context.Context, id uint) (*dto.JobRunResponse, error)
	GetAllJobRuns(ctx context.Context) ([]*dto.JobRunResponse, error)
	GetJobRunsByJobID(ctx context.Context, jobID uint) ([]*dto.JobRunResponse, error)
}

// NewJobRunService creates a new job run service.
func NewJobRunService(runRepo repository.JobRunRepository, logger *logger.Logger) JobRunService {
	return &jobRunService{
		runRepo: runRepo,
		logger:  logger,
	}
}

type jobRunService struct {
	runRepo repository.JobRunRepository
	logger  *logger.Logger
}

// GetJobRunByID retrieves a job run record by its ID.
func (s *jobRunService) GetJobRunByID(ctx context.Context, id uint) (*dto.JobRunResponse, error) {
	run, err := s.runRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to find job run", logger.ErrorField(err), logger.Field("run_id", id))
		return nil, err
	}
	return s.mapToJobRunResponse(run), nil
}

// GetAllJobRuns retrieves all job run records.
func (s *jobRunService) GetAllJobRuns(ctx context.Context) ([]*dto.JobRunResponse, error) {
	runs, err := s.runRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get all job runs", logger.ErrorField(err))
		return nil, err
	}

	var responses []*dto.JobRunResponse
	for _, run := range runs {
		responses = append(responses, s.mapToJobRunResponse(&run))
	}
	return responses, nil
}

// GetJobRunsByJobID retrieves all job run records for a specific job.
func (s *jobRunService) GetJobRunsByJobID(ctx context.Context, jobID uint) ([]*dto.JobRunResponse, error) {
	runs, err := s.runRepo.FindAllByJobID(ctx, jobID)
	if err != nil {
		s.logger.Error("Failed to get job runs by job ID", logger.ErrorField(err), logger.Field("job_id", jobID))
		return nil, err
	}

	var responses []*dto.JobRunResponse
	for _, run := range runs {
		responses = append(responses, s.mapToJobRunResponse(&run))
	}
	return responses, nil
}

// mapToJobRunResponse maps an entity.JobRun to a dto.JobRunResponse.
func (s *jobRunService) mapToJobRunResponse(run *entity.JobRun) *dto.JobRunResponse {
	resp := &dto.JobRunResponse{
		ID:         run.ID,
		JobID:      run.JobID,
		ScheduleID: run.ScheduleID,
		Status:     run.Status,
		StartedAt:  run.StartedAt,
		Output:     run.Output.String,
		Error:      run.ErrorMessage.String,
	}
	if run.CompletedAt.Valid {
		resp.Duration = run.CompletedAt.Time.Sub(run.StartedAt).Milliseconds()
	}
	return resp
}
