// cmd/worker/startup.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"profile-backend/internal/config"
	"profile-backend/internal/infrastructure/storage"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	redisClient *redis.Client
	storage     *storage.MinIOStorage
}

// startServices checks dependencies and starts the worker health endpoint.
func startServices(cfg config.QueueConfig, objectStorage *storage.MinIOStorage) error {
	log.Info().Msg("🚀 Profile Worker Starting...")

	checker := &HealthChecker{
		redisClient: redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
		storage:     objectStorage,
	}
	defer checker.redisClient.Close()

	if err := checker.checkAll(); err != nil {
		return err
	}

	go startHealthCheckServer()
	return nil
}

func (h *HealthChecker) checkAll() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"Redis Connection", h.checkRedis},
		{"Object Storage", h.checkStorage},
	}

	for _, check := range checks {
		log.Info().Msgf("⏳ Checking %s...", check.name)
		if err := check.fn(); err != nil {
			log.Error().Err(err).Msgf("❌ %s", check.name)
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Msgf("✓ %s: OK", check.name)
	}
	return nil
}

func (h *HealthChecker) checkRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return h.redisClient.Ping(ctx).Err()
}

// checkStorage fails fast: every task this worker runs uploads to MinIO.
func (h *HealthChecker) checkStorage() error {
	if h.storage == nil {
		return fmt.Errorf("MinIO is disabled or unreachable (set MINIO_ENABLED=true)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return h.storage.Ping(ctx)
}

func startHealthCheckServer() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthCheckHandler)

	log.Info().Msg("[Health] Starting health check server on :9999")
	if err := http.ListenAndServe(":9999", mux); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"UP","service":"profile-worker"}`))
}
