package entity

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// JobType identifies which worker strategy executes a job.
type JobType string

const (
	JobTypeHTTPRequest     JobType = "http_request"
	JobTypePickGeneration  JobType = "pick_generation"
	JobTypePropGeneration  JobType = "prop_generation"
	JobTypeResultsCheck    JobType = "results_check"
	JobTypePropResults     JobType = "prop_results"
	JobTypeTeamNewsScraper JobType = "team_news_scraper"
	JobTypeNewsSummary     JobType = "news_summary"
)

// Run statuses for JobRun records.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Job is a schedulable unit of work with a JSON payload.
type Job struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Type        JobType        `gorm:"type:varchar(50);not null" json:"type"`
	Payload     datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	RetryPolicy datatypes.JSON `gorm:"type:jsonb" json:"retry_policy"`
	Timeout     int            `gorm:"not null;default:300" json:"timeout"`
	Schedules   []JobSchedule  `gorm:"foreignKey:JobID" json:"schedules"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Job model.
func (Job) TableName() string {
	return "jobs"
}

// JobSchedule is a cron schedule attached to a job.
type JobSchedule struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	JobID          uint         `gorm:"not null;index" json:"job_id"`
	CronExpression string       `gorm:"not null" json:"cron_expression"`
	IsActive       bool         `gorm:"not null;default:true" json:"is_active"`
	NextExecution  sql.NullTime `json:"next_execution"`
	LastExecution  sql.NullTime `json:"last_execution"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the JobSchedule model.
func (JobSchedule) TableName() string {
	return "job_schedules"
}

// JobRun is one execution of a job, created when the scheduler enqueues the
// task and updated by the worker with the outcome.
type JobRun struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	JobID        uint           `gorm:"not null;index" json:"job_id"`
	ScheduleID   uint           `json:"schedule_id"`
	Status       string         `gorm:"type:varchar(20);not null" json:"status"`
	StartedAt    time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt  sql.NullTime   `json:"completed_at"`
	Output       sql.NullString `json:"output"`
	ErrorMessage sql.NullString `json:"error_message"`
}

// TableName specifies the table name for the JobRun model.
func (JobRun) TableName() string {
	return "job_runs"
}
