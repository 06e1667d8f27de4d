package scheduler

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyJobName = errors.New("job name is required")
	ErrInterval     = errors.New("interval must be at least one minute")
)

// Service wraps a gocron scheduler for the app's background jobs.
type Service struct {
	scheduler gocron.Scheduler
	log       *zap.Logger
	stopOnce  sync.Once
	stopErr   error
}

func New(log *zap.Logger) (*Service, error) {
	schedLog := log.With(zap.String("component", "scheduler"))

	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					schedLog.Error("Scheduler job panicked",
						zap.String("job_id", jobID.String()),
						zap.String("job_name", jobName),
						zap.Any("panic", recoverData),
					)
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &Service{scheduler: sched, log: schedLog}, nil
}

// AddIntervalJob registers a job that runs every intervalMinutes.
func (s *Service) AddIntervalJob(name string, intervalMinutes int, task func()) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyJobName
	}
	if intervalMinutes < 1 {
		return ErrInterval
	}

	jobLog := s.log.With(zap.String("job_name", name), zap.Int("interval_minutes", intervalMinutes))

	wrappedTask := func() {
		jobLog.Debug("Scheduler job started")
		task()
		jobLog.Debug("Scheduler job completed")
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(time.Duration(intervalMinutes)*time.Minute),
		gocron.NewTask(wrappedTask),
		gocron.WithName(name),
	)
	if err != nil {
		jobLog.Error("Failed to register scheduler job", zap.Error(err))
		return err
	}

	jobLog.Info("Scheduler job registered")
	return nil
}

// Start begins running registered jobs.
func (s *Service) Start() {
	s.log.Info("Scheduler starting")
	s.scheduler.Start()
}

// Stop shuts down the scheduler and waits for running jobs.
func (s *Service) Stop() error {
	s.stopOnce.Do(func() {
		s.log.Info("Scheduler stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}
