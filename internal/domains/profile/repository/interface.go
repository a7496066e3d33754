package repository

import (
	"context"

	"profile-backend/internal/domains/profile/model"
)

// =====================================================
// PROFILE REPOSITORY INTERFACE
// =====================================================

// RepositoryInterface is the profile store. Records are keyed by email and
// carry a store-assigned integer id.
type RepositoryInterface interface {
	// List returns every profile ordered by id.
	List(ctx context.Context) ([]model.Profile, error)

	// GetByID returns ErrProfileNotFound if the id does not exist.
	GetByID(ctx context.Context, id int64) (*model.Profile, error)

	// GetByEmail returns ErrProfileNotFound if no record has that email.
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)

	// Upsert creates the profile for p.Email or replaces every field of the
	// existing one. At most one write per email completes at a time.
	// Returns: stored profile and whether it was created.
	Upsert(ctx context.Context, p *model.Profile) (*model.Profile, bool, error)

	// Update loads the profile with id, runs apply on it and writes the result
	// back inside one transaction.
	// Errors: ErrProfileNotFound, ErrDuplicateEmail
	Update(ctx context.Context, id int64, apply func(*model.Profile)) (*model.Profile, error)

	// SeedExclusive upserts p and deletes every other profile in one transaction.
	SeedExclusive(ctx context.Context, p *model.Profile) (*model.Profile, bool, error)

	Ping(ctx context.Context) error
}
