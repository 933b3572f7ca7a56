package jobs

import (
	"context"
	"time"

	"rentnest-backend/internal/config"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"
	"rentnest-backend/internal/service"
)

// jobTimeout bounds a single run so a stuck query cannot pile up runs.
const jobTimeout = 5 * time.Minute

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	listings  repository.ListingRepository
	inquiries repository.InquiryRepository
	email     service.EmailService
	config    config.SchedulerConfig
	now       func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(listings repository.ListingRepository, inquiries repository.InquiryRepository, email service.EmailService, cfg config.SchedulerConfig) *JobRunner {
	return &JobRunner{
		listings:  listings,
		inquiries: inquiries,
		email:     email,
		config:    cfg,
		now:       time.Now,
	}
}

// Config returns the schedule the jobs are registered with.
func (jr *JobRunner) Config() config.SchedulerConfig {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	logger.Info("Starting job", "job", jobName)
	if err := jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	logger.Info("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.SyncOccupancyStatus()
	jr.SendPendingInquiryDigest()
}
