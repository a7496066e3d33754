package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-backend/internal/domains/profile/model"
	"profile-backend/internal/infrastructure/database"
)

func newSQLiteRepo(t *testing.T) RepositoryInterface {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, database.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, EnsureSQLiteSchema(ctx, db))
	return NewSQLiteRepository(db)
}

func adaProfile() *model.Profile {
	p := &model.Profile{
		Name:      "Ada",
		Email:     "ada@example.com",
		Education: "BSc",
		Skills:    []string{"rust", "go"},
		Projects: []model.Project{{
			Title:       "X",
			Description: "compiler",
			When:        "2023",
			Skills:      []string{"rust"},
			Links:       model.ProjectLinks{GitHub: "https://github.com/ada/x"},
		}},
		Work:  []model.Work{{Role: "Engineer", Company: "Acme", Period: "2020-2023", Summary: "Built things"}},
		Links: model.Links{GitHub: "https://github.com/ada"},
	}
	p.Normalize()
	return p
}

func TestSQLite_UpsertCreatesThenReplaces(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	created, isNew, err := repo.Upsert(ctx, adaProfile())
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, adaProfile().Projects, created.Projects)
	assert.Equal(t, adaProfile().Work, created.Work)
	assert.False(t, created.CreatedAt.IsZero())

	replacement := &model.Profile{Name: "Ada L", Email: "ada@example.com"}
	replacement.Normalize()
	replaced, isNew, err := repo.Upsert(ctx, replacement)
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.ID, replaced.ID)
	assert.Equal(t, "Ada L", replaced.Name)
	assert.Empty(t, replaced.Skills)
	assert.NotNil(t, replaced.Projects)
	assert.Equal(t, created.CreatedAt, replaced.CreatedAt)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLite_GetNotFound(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, model.ErrProfileNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, model.ErrProfileNotFound)
}

func TestSQLite_ListOrderedByID(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for _, email := range []string{"c@example.com", "a@example.com", "b@example.com"} {
		p := &model.Profile{Name: email, Email: email}
		p.Normalize()
		_, _, err := repo.Upsert(ctx, p)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c@example.com", all[0].Email)
	assert.Equal(t, "b@example.com", all[2].Email)
}

func TestSQLite_Update(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	stored, _, err := repo.Upsert(ctx, adaProfile())
	require.NoError(t, err)

	updated, err := repo.Update(ctx, stored.ID, func(p *model.Profile) {
		p.Skills = append(p.Skills, "zig")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"rust", "go", "zig"}, updated.Skills)
	assert.Equal(t, "BSc", updated.Education)

	_, err = repo.Update(ctx, 99, func(p *model.Profile) {})
	assert.ErrorIs(t, err, model.ErrProfileNotFound)
}

func TestSQLite_ConcurrentUpdatesKeepEveryField(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	stored, _, err := repo.Upsert(ctx, adaProfile())
	require.NoError(t, err)

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(skill string) {
			defer wg.Done()
			_, err := repo.Update(ctx, stored.ID, func(p *model.Profile) {
				p.Skills = append(p.Skills, skill)
			})
			errs <- err
		}(fmt.Sprintf("skill-%d", i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Len(t, got.Skills, 2+writers)
	for i := 0; i < writers; i++ {
		assert.Contains(t, got.Skills, fmt.Sprintf("skill-%d", i))
	}
}

func TestSQLite_UpdateDuplicateEmail(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	ada, _, err := repo.Upsert(ctx, adaProfile())
	require.NoError(t, err)
	bo := &model.Profile{Name: "Bo", Email: "bo@example.com"}
	bo.Normalize()
	_, _, err = repo.Upsert(ctx, bo)
	require.NoError(t, err)

	_, err = repo.Update(ctx, ada.ID, func(p *model.Profile) {
		p.Email = "bo@example.com"
	})
	assert.ErrorIs(t, err, model.ErrDuplicateEmail)

	kept, err := repo.GetByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", kept.Email)
}

func TestSQLite_SeedExclusive(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	bo := &model.Profile{Name: "Bo", Email: "bo@example.com"}
	bo.Normalize()
	_, _, err := repo.Upsert(ctx, bo)
	require.NoError(t, err)

	seeded, created, err := repo.SeedExclusive(ctx, adaProfile())
	require.NoError(t, err)
	assert.True(t, created)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, seeded.ID, all[0].ID)
	assert.Equal(t, "ada@example.com", all[0].Email)
}

func TestSQLite_Ping(t *testing.T) {
	repo := newSQLiteRepo(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
