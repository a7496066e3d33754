package main

import (
	"github.com/rs/zerolog/log"

	"profile-backend/internal/config"
	"profile-backend/internal/infrastructure/queue"
)

// asynqScheduler wraps queue.Scheduler
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(cfg config.QueueConfig) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.RedisAddr, cfg.PublishSchedule)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatal().Err(err).Msg("[Scheduler] Failed to register")
	}

	log.Info().Str("spec", cfg.PublishSchedule).Msg("[Scheduler] Starting...")
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("[Scheduler] Failed")
	}

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] ✓ Stopped")
}
