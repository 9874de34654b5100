// Package scheduler runs the periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/trustners-ux/trustner-platform-sub000/internal/config"
)

const jobTimeout = 5 * time.Minute

// Jobs are the service operations run on a schedule
type Jobs interface {
	RefreshBenchmarkRate(ctx context.Context) error
	SendReviewReminders(ctx context.Context) (int, error)
}

// Scheduler wraps a cron runner
type Scheduler struct {
	cron *cron.Cron
	jobs Jobs
	log  *logrus.Logger
}

// New registers the rate refresh and review reminder jobs
func New(cfg *config.Config, jobs Jobs, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		jobs: jobs,
		log:  log,
	}
	if _, err := s.cron.AddFunc(cfg.RateRefreshSchedule, s.refreshRate); err != nil {
		return nil, fmt.Errorf("invalid RATE_REFRESH_SCHEDULE %q: %w", cfg.RateRefreshSchedule, err)
	}
	if _, err := s.cron.AddFunc(cfg.ReminderSchedule, s.sendReminders); err != nil {
		return nil, fmt.Errorf("invalid REMINDER_SCHEDULE %q: %w", cfg.ReminderSchedule, err)
	}
	return s, nil
}

// Start runs the scheduler in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infof("Scheduler started with %d jobs", len(s.cron.Entries()))
}

// Stop halts scheduling and waits for running jobs
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) refreshRate() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if err := s.jobs.RefreshBenchmarkRate(ctx); err != nil {
		s.log.Errorf("Scheduled rate refresh failed: %v", err)
	}
}

func (s *Scheduler) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.jobs.SendReviewReminders(ctx); err != nil {
		s.log.Errorf("Scheduled review reminders failed: %v", err)
	}
}
