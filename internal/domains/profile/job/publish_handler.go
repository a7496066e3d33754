package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"profile-backend/internal/domains/profile/model"
	"profile-backend/internal/domains/profile/service"
	"profile-backend/internal/shared"
)

// PublishProfileHandler uploads one profile's text rendering.
type PublishProfileHandler struct {
	profileService service.ServiceInterface
}

func NewPublishProfileHandler(profileService service.ServiceInterface) *PublishProfileHandler {
	return &PublishProfileHandler{profileService: profileService}
}

func (h *PublishProfileHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.PublishProfilePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Str("task_type", task.Type()).Msg("Invalid publish payload")
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	result, err := h.profileService.Publish(ctx, payload.ProfileID)
	if err != nil {
		// Deleted profiles and a missing object store will not fix themselves.
		if errors.Is(err, model.ErrProfileNotFound) || errors.Is(err, model.ErrPublishUnavailable) {
			log.Warn().Err(err).Int64("profile_id", payload.ProfileID).Msg("Skipping profile publish")
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		return err
	}

	log.Info().
		Int64("profile_id", result.ProfileID).
		Str("url", result.URL).
		Msg("Profile publish task completed")
	return nil
}

// PublishAllProfilesHandler republishes every profile. Registered on the scheduler.
type PublishAllProfilesHandler struct {
	profileService service.ServiceInterface
}

func NewPublishAllProfilesHandler(profileService service.ServiceInterface) *PublishAllProfilesHandler {
	return &PublishAllProfilesHandler{profileService: profileService}
}

func (h *PublishAllProfilesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	count, err := h.profileService.PublishAll(ctx)
	if err != nil {
		if errors.Is(err, model.ErrPublishUnavailable) {
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		log.Error().Err(err).Int("published", count).Msg("Publish all profiles failed")
		return err
	}
	return nil
}
