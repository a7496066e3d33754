package main

import (
	"github.com/hibiken/asynq"

	profileJob "profile-backend/internal/domains/profile/job"
	"profile-backend/internal/shared"
	"profile-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	publishProfile     *profileJob.PublishProfileHandler
	publishAllProfiles *profileJob.PublishAllProfilesHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		publishProfile:     profileJob.NewPublishProfileHandler(c.ProfileService),
		publishAllProfiles: profileJob.NewPublishAllProfilesHandler(c.ProfileService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypePublishProfile, h.publishProfile.ProcessTask)
	mux.HandleFunc(shared.TypePublishAllProfiles, h.publishAllProfiles.ProcessTask)
}
