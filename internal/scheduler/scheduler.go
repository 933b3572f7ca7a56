package scheduler

import (
	"fmt"
	"time"

	"rentnest-backend/internal/jobs"
	"rentnest-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler with every job registered. A malformed
// schedule is an error rather than a silently missing job.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// UTC with seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config()

	entries := []struct {
		name string
		spec string
		run  func()
	}{
		{"SyncOccupancyStatus", cfg.SyncOccupancyStatus, s.jobs.SyncOccupancyStatus},
		{"SendPendingInquiryDigest", cfg.SendInquiryDigest, s.jobs.SendPendingInquiryDigest},
	}
	for _, e := range entries {
		if _, err := s.cron.AddFunc(e.spec, e.run); err != nil {
			return fmt.Errorf("failed to register %s job with schedule %q: %w", e.name, e.spec, err)
		}
		logger.Debug("Registered cron job", "job", e.name, "schedule", e.spec)
	}

	logger.Info("All cron jobs registered successfully", "count", len(entries))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
