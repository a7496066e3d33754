package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"profile-backend/internal/domains/profile/model"
)

// =====================================================
// PROFILE SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ========================================
	// READ
	// ========================================

	// GetCanonical returns the first stored profile (the owner's profile).
	// Errors: ErrProfileNotFound when the store is empty
	GetCanonical(ctx context.Context) (*model.Profile, error)

	// List returns every profile in store order.
	List(ctx context.Context) ([]model.Profile, error)

	GetByID(ctx context.Context, id int64) (*model.Profile, error)

	// ========================================
	// WRITE
	// ========================================

	// Upsert creates or fully replaces the profile keyed by req.Email.
	Upsert(ctx context.Context, req *model.UpsertProfileRequest) (*model.UpsertResult, error)

	// Update applies the provided fields to the profile with id.
	Update(ctx context.Context, id int64, req *model.UpdateProfileRequest) (*model.Profile, error)

	// Seed upserts req; with prune it also removes every other profile.
	Seed(ctx context.Context, req *model.UpsertProfileRequest, prune bool) (*model.UpsertResult, error)

	// ========================================
	// QUERY
	// ========================================

	TopSkills(ctx context.Context) ([]model.SkillCount, error)

	// ProjectsBySkill errors with ErrMissingParameter on a blank skill.
	ProjectsBySkill(ctx context.Context, skill string) ([]model.ProjectMatch, error)

	// Search errors with ErrMissingParameter on a blank query.
	Search(ctx context.Context, query string) ([]model.Profile, error)

	// ========================================
	// EXPORT & PUBLISH
	// ========================================

	BuildSkillsWorkbook(items []model.SkillCount) (*excelize.File, error)
	BuildProjectsWorkbook(items []model.ProjectMatch) (*excelize.File, error)

	// Publish uploads the plain-text rendering of one profile.
	// Errors: ErrPublishUnavailable when no object storage is configured
	Publish(ctx context.Context, id int64) (*model.PublishResponse, error)

	// PublishAll publishes every profile and returns how many were uploaded.
	PublishAll(ctx context.Context) (int, error)

	// Health pings the store.
	Health(ctx context.Context) error
}

// Publisher stores rendered documents. Implemented by storage.MinIOStorage.
type Publisher interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// TaskEnqueuer schedules background publication. Implemented by queue.Client.
type TaskEnqueuer interface {
	EnqueuePublish(ctx context.Context, profileID int64) error
}
