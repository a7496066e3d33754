package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"profile-backend/internal/domains/profile/model"
	"profile-backend/pkg/cache"
)

// Cache key constants
const (
	snapshotCacheKey = "profiles:snapshot"
	DefaultCacheTTL  = 5 * time.Minute
)

// cachedRepository keeps the full List snapshot in the cache and drops it on
// every write. Cache failures are logged and treated as misses.
type cachedRepository struct {
	RepositoryInterface
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedRepository wraps inner with a read-through snapshot cache.
func NewCachedRepository(inner RepositoryInterface, c cache.Cache, ttl time.Duration) RepositoryInterface {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &cachedRepository{RepositoryInterface: inner, cache: c, ttl: ttl}
}

func (r *cachedRepository) List(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	found, err := r.cache.Get(ctx, snapshotCacheKey, &profiles)
	if err != nil {
		log.Warn().Err(err).Msg("profile snapshot cache read failed")
	}
	if found && err == nil {
		for i := range profiles {
			profiles[i].Normalize()
		}
		return profiles, nil
	}

	profiles, err = r.RepositoryInterface.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, snapshotCacheKey, profiles, r.ttl); err != nil {
		log.Warn().Err(err).Msg("profile snapshot cache write failed")
	}
	return profiles, nil
}

func (r *cachedRepository) Upsert(ctx context.Context, p *model.Profile) (*model.Profile, bool, error) {
	stored, created, err := r.RepositoryInterface.Upsert(ctx, p)
	if err == nil {
		r.invalidate(ctx)
	}
	return stored, created, err
}

func (r *cachedRepository) Update(ctx context.Context, id int64, apply func(*model.Profile)) (*model.Profile, error) {
	updated, err := r.RepositoryInterface.Update(ctx, id, apply)
	if err == nil {
		r.invalidate(ctx)
	}
	return updated, err
}

func (r *cachedRepository) SeedExclusive(ctx context.Context, p *model.Profile) (*model.Profile, bool, error) {
	stored, created, err := r.RepositoryInterface.SeedExclusive(ctx, p)
	if err == nil {
		r.invalidate(ctx)
	}
	return stored, created, err
}

func (r *cachedRepository) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, snapshotCacheKey); err != nil {
		log.Warn().Err(err).Msg("profile snapshot cache invalidation failed")
	}
}

// Ping checks the store. An unreachable cache only degrades reads, so it is
// logged without failing the check.
func (r *cachedRepository) Ping(ctx context.Context) error {
	if err := r.RepositoryInterface.Ping(ctx); err != nil {
		return err
	}
	if err := r.cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("profile snapshot cache unreachable")
	}
	return nil
}
