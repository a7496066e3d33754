package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"profile-backend/internal/shared"
)

// Client enqueues profile background tasks.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr string) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

// EnqueuePublish schedules the plain-text publication of one profile.
// Tasks are unique per profile for a short window so bursts of writes
// collapse into one upload.
func (c *Client) EnqueuePublish(ctx context.Context, profileID int64) error {
	payload, err := json.Marshal(shared.PublishProfilePayload{ProfileID: profileID})
	if err != nil {
		return fmt.Errorf("marshal publish payload: %w", err)
	}

	task := asynq.NewTask(shared.TypePublishProfile, payload)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.Unique(30*time.Second),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypePublishProfile, err)
	}

	log.Debug().
		Str("task_id", info.ID).
		Int64("profile_id", profileID).
		Msg("Enqueued profile publish task")
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
