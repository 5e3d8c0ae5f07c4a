package scheduler

import (
	"fmt"

	"github.com/quickdrop/quickdrop/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DigestRunner produces and delivers one upload digest
type DigestRunner interface {
	RunDigest() error
}

// Service handles scheduling of digest runs
type Service struct {
	config *config.Config
	runner DigestRunner
	cron   *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, runner DigestRunner) *Service {
	return &Service{
		config: cfg,
		runner: runner,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Expression returns the cron expression for a report schedule
func Expression(schedule string) (string, error) {
	switch schedule {
	case "daily":
		// Run daily at 9 AM
		return "0 0 9 * * *", nil
	case "weekly":
		// Run weekly on Monday at 9 AM
		return "0 0 9 * * MON", nil
	default:
		return "", fmt.Errorf("unknown report schedule %q", schedule)
	}
}

// Start begins the scheduled digest runs
func (s *Service) Start() error {
	cronExpression, err := Expression(s.config.ReportSchedule)
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc(cronExpression, s.run)
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s digest schedule", s.config.ReportSchedule)
	return nil
}

func (s *Service) run() {
	logrus.Info("Starting scheduled digest run")
	if err := s.runner.RunDigest(); err != nil {
		logrus.Errorf("Scheduled digest run failed: %v", err)
	}
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		logrus.Info("Scheduler stopped")
	}
}
