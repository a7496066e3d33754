package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"profile-backend/internal/shared"
	"profile-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	spec      string
}

// NewScheduler creates a scheduler that republishes every profile on spec (cron syntax).
func NewScheduler(redisAddress, spec string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		spec:      spec,
	}
}

func (s *Scheduler) RegisterJobs() error {
	task := asynq.NewTask(shared.TypePublishAllProfiles, nil)

	_, err := s.scheduler.Register(
		s.spec,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register PublishAllProfiles job", err)
		return err
	}

	logger.Info("✓ Registered PublishAllProfiles", map[string]interface{}{"spec": s.spec})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
