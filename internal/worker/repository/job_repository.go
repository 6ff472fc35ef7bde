package repository

import (
	"context"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// JobRepository defines the interface for job data operations.
type JobRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.Job, error)
}

// NewJobRepository creates a new GORM-based job repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

type jobRepository struct {
	db *gorm.DB
}

// FindByID retrieves a job by its ID.
func (r *jobRepository) FindByID(ctx context.Context, id uint) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// JobRunRepository defines the interface for job run data operations.
type JobRunRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.JobRun, error)
	Update(ctx context.Context, run *entity.JobRun) error
}

// NewJobRunRepository creates a new GORM-based job run repository.
func NewJobRunRepository(db *gorm.DB) JobRunRepository {
	return &jobRunRepository{db: db}
}

type jobRunRepository struct {
	db *gorm.DB
}

// FindByID retrieves a job run by its ID.
func (r *jobRunRepository) FindByID(ctx context.Context, id uint) (*entity.JobRun, error) {
	var run entity.JobRun
	if err := r.db.WithContext(ctx).First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// Update persists changes to a job run.
func (r *jobRunRepository) Update(ctx context.Context, run *entity.JobRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}
