package infra

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PerformanceGenerator is implemented by the daily performance service
type PerformanceGenerator interface {
	GenerateDaily(ctx context.Context) error
}

// Scheduler manages the daily performance job
type Scheduler struct {
	cron      *cron.Cron
	generator PerformanceGenerator
}

// NewScheduler creates a new scheduler
func NewScheduler(generator PerformanceGenerator) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		generator: generator,
	}
}

// Start registers the daily job and starts the cron loop. The job runs
// shortly after midnight UTC; GenerateDaily itself skips bots that already
// have a record for the day, so a restart never double-settles.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("10 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		logrus.Info("Daily performance job triggered")
		if err := s.generator.GenerateDaily(ctx); err != nil {
			logrus.WithError(err).Error("Daily performance job failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Info("Scheduler started: daily performance at 00:10 UTC")
	return nil
}

// RunNow triggers the daily job immediately
func (s *Scheduler) RunNow(ctx context.Context) error {
	return s.generator.GenerateDaily(ctx)
}

// Stop stops the scheduler gracefully
func (s *Scheduler) Stop() {
	s.cron.Stop()
	logrus.Info("Scheduler stopped")
}
