package repository

import (
	"context"
	"time"

	"gary-picks-engine/internal/entity"

	"gorm.io/gorm"
)

// JobScheduleRepository defines the interface for job schedule data operations.
type JobScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.JobSchedule) error
	FindByID(ctx context.Context, id uint) (*entity.JobSchedule, error)
	FindAll(ctx context.Context) ([]entity.JobSchedule, error)
	Update(ctx context.Context, schedule *entity.JobSchedule) error
	Delete(ctx context.Context, id uint) error
	FindDueSchedules(ctx context.Context) ([]entity.JobSchedule, error)
}

// NewJobScheduleRepository creates a new GORM-based job schedule repository.
func NewJobScheduleRepository(db *gorm.DB) JobScheduleRepository {
	return &jobScheduleRepository{db: db}
}

type jobScheduleRepository struct {
	db *gorm.DB
}

// Create creates a new job schedule.
func (r *jobScheduleRepository) Create(ctx context.Context, schedule *entity.JobSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

// FindByID retrieves a job schedule by its ID.
func (r *jobScheduleRepository) FindByID(ctx context.Context, id uint) (*entity.JobSchedule, error) {
	var schedule entity.JobSchedule
	if err := r.db.WithContext(ctx).First(&schedule, id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

// FindAll retrieves all job schedules.
func (r *jobScheduleRepository) FindAll(ctx context.Context) ([]entity.JobSchedule, error) {
	var schedules []entity.JobSchedule
	if err := r.db.WithContext(ctx).Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// Update updates a job schedule.
func (r *jobScheduleRepository) Update(ctx context.Context, schedule *entity.JobSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

// Delete removes a job schedule by its ID.
func (r *jobScheduleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.JobSchedule{}, id).Error
}

// FindDueSchedules finds all active schedules that need to be run.
func (r *jobScheduleRepository) FindDueSchedules(ctx context.Context) ([]entity.JobSchedule, error) {
	var schedules []entity.JobSchedule
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND (next_execution IS NULL OR next_execution <= ?)", true, time.Now()).
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}
