package repository

import (
	"context"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// JobRunRepository defines the interface for job run data operations.
type JobRunRepository interface {
	Create(ctx context.Context, run *entity.JobRun) error
	FindByID(ctx context.Context, id uint) (*entity.JobRun, error)
	FindAll(ctx context.Context) ([]entity.JobRun, error)
	FindAllByJobID(ctx context.Context, jobID uint) ([]entity.JobRun, error)
	Update(ctx context.Context, run *entity.JobRun) error
}

// NewJobRunRepository creates a new GORM-based job run repository.
func NewJobRunRepository(db *gorm.DB) JobRunRepository {
	return &jobRunRepository{db: db}
}

type jobRunRepository struct {
	db *gorm.DB
}

// Create creates a new job run record.
func (r *jobRunRepository) Create(ctx context.Context, run *entity.JobRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// FindByID retrieves a job run record by its ID.
func (r *jobRunRepository) FindByID(ctx context.Context, id uint) (*entity.JobRun, error) {
	var run entity.JobRun
	if err := r.db.WithContext(ctx).First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// FindAll retrieves all job run records.
func (r *jobRunRepository) FindAll(ctx context.Context) ([]entity.JobRun, error) {
	var runs []entity.JobRun
	if err := r.db.WithContext(ctx).Order("started_at desc").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// FindAllByJobID retrieves all job run records for a specific job.
func (r *jobRunRepository) FindAllByJobID(ctx context.Context, jobID uint) ([]entity.JobRun, error) {
	var runs []entity.JobRun
	if err := r.db.WithContext(ctx).Where("job_id = ?", jobID).Order("started_at desc").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Update updates a job run record.
func (r *jobRunRepository) Update(ctx context.Context, run *entity.JobRun) error {
	return r.db.WithContext(ctx).Updates(run).Error
}
