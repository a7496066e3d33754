package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"profile-backend/internal/domains/profile/model"
	"profile-backend/internal/domains/profile/query"
	"profile-backend/internal/domains/profile/repository"
)

type profileService struct {
	repo      repository.RepositoryInterface
	publisher Publisher    // nil when object storage is disabled
	enqueuer  TaskEnqueuer // nil when the queue is disabled
}

// NewProfileService wires the service. publisher and enqueuer may be nil.
func NewProfileService(repo repository.RepositoryInterface, publisher Publisher, enqueuer TaskEnqueuer) ServiceInterface {
	return &profileService{
		repo:      repo,
		publisher: publisher,
		enqueuer:  enqueuer,
	}
}

// snapshot reads every profile once for the current request.
func (s *profileService) snapshot(ctx context.Context) ([]model.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return profiles, nil
}

func (s *profileService) GetCanonical(ctx context.Context) (*model.Profile, error) {
	profiles, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, model.ErrProfileNotFound
	}
	return &profiles[0], nil
}

func (s *profileService) List(ctx context.Context) ([]model.Profile, error) {
	return s.snapshot(ctx)
}

func (s *profileService) GetByID(ctx context.Context, id int64) (*model.Profile, error) {
	if id <= 0 {
		return nil, model.ErrProfileNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return p, nil
}

func (s *profileService) Upsert(ctx context.Context, req *model.UpsertProfileRequest) (*model.UpsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidProfile, err)
	}

	stored, created, err := s.repo.Upsert(ctx, req.ToEntity())
	if err != nil {
		return nil, storeError(err)
	}

	log.Info().
		Int64("profile_id", stored.ID).
		Str("email", stored.Email).
		Bool("created", created).
		Msg("Profile upserted")

	s.schedulePublish(ctx, stored.ID)
	return &model.UpsertResult{Profile: stored, Created: created}, nil
}

func (s *profileService) Update(ctx context.Context, id int64, req *model.UpdateProfileRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidProfile, err)
	}

	if id <= 0 {
		return nil, model.ErrProfileNotFound
	}

	updated, err := s.repo.Update(ctx, id, req.ApplyToEntity)
	if err != nil {
		return nil, storeError(err)
	}

	log.Info().Int64("profile_id", updated.ID).Msg("Profile updated")

	s.schedulePublish(ctx, updated.ID)
	return updated, nil
}

func (s *profileService) Seed(ctx context.Context, req *model.UpsertProfileRequest, prune bool) (*model.UpsertResult, error) {
	if !prune {
		return s.Upsert(ctx, req)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidProfile, err)
	}

	stored, created, err := s.repo.SeedExclusive(ctx, req.ToEntity())
	if err != nil {
		return nil, storeError(err)
	}
	return &model.UpsertResult{Profile: stored, Created: created}, nil
}

func (s *profileService) TopSkills(ctx context.Context) ([]model.SkillCount, error) {
	profiles, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.TopSkills(profiles), nil
}

func (s *profileService) ProjectsBySkill(ctx context.Context, skill string) ([]model.ProjectMatch, error) {
	if strings.TrimSpace(skill) == "" {
		return nil, fmt.Errorf("%w: skill", model.ErrMissingParameter)
	}
	profiles, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.ProjectsBySkill(profiles, skill)
}

func (s *profileService) Search(ctx context.Context, q string) ([]model.Profile, error) {
	if strings.TrimSpace(q) == "" {
		return nil, fmt.Errorf("%w: q", model.ErrMissingParameter)
	}
	profiles, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Search(profiles, q)
}

func (s *profileService) Health(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return nil
}

// schedulePublish is best effort: a failed enqueue never fails the write.
func (s *profileService) schedulePublish(ctx context.Context, id int64) {
	if s.enqueuer == nil {
		return
	}
	if err := s.enqueuer.EnqueuePublish(ctx, id); err != nil {
		log.Warn().Err(err).Int64("profile_id", id).Msg("Failed to enqueue profile publish")
	}
}

// storeError keeps domain errors and marks everything else as a store failure.
func storeError(err error) error {
	if errors.Is(err, model.ErrProfileNotFound) || errors.Is(err, model.ErrDuplicateEmail) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
}
